package inkwell

import (
	"testing"
	"time"
)

func TestLoginLimiterBlocksAfterMax(t *testing.T) {
	l := NewLoginLimiter(3, time.Minute)

	ip := "203.0.113.7"
	for i := 0; i < 3; i++ {
		if !l.Check(ip) {
			t.Fatalf("attempt %d blocked too early", i+1)
		}
		l.Record(ip)
	}
	if l.Check(ip) {
		t.Error("attempt over the limit should be blocked")
	}
}

func TestLoginLimiterPerIP(t *testing.T) {
	l := NewLoginLimiter(1, time.Minute)

	l.Record("203.0.113.7")
	if l.Check("203.0.113.7") {
		t.Error("recorded IP should be blocked")
	}
	if !l.Check("203.0.113.8") {
		t.Error("other IPs should be unaffected")
	}
}

func TestLoginLimiterWindowExpiry(t *testing.T) {
	l := NewLoginLimiter(1, 20*time.Millisecond)

	l.Record("203.0.113.7")
	if l.Check("203.0.113.7") {
		t.Fatal("IP should be blocked inside the window")
	}
	time.Sleep(40 * time.Millisecond)
	if !l.Check("203.0.113.7") {
		t.Error("attempts outside the window should not count")
	}
}
