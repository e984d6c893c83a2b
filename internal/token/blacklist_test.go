package token

import (
	"fmt"
	"sync"
	"testing"
)

func TestBlacklistAddAndContains(t *testing.T) {
	bl := NewBlacklist()

	if bl.Contains("tok-1") {
		t.Error("Contains() = true for fresh blacklist")
	}

	bl.Add("tok-1")
	if !bl.Contains("tok-1") {
		t.Error("Contains() = false after Add")
	}
	if bl.Contains("tok-2") {
		t.Error("Contains() = true for unrelated token")
	}
}

func TestBlacklistAddIdempotent(t *testing.T) {
	bl := NewBlacklist()

	bl.Add("tok-1")
	bl.Add("tok-1")

	if !bl.Contains("tok-1") {
		t.Error("Contains() = false after repeated Add")
	}
}

func TestBlacklistConcurrentAccess(t *testing.T) {
	bl := NewBlacklist()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		tok := fmt.Sprintf("tok-%d", i)
		go func() {
			defer wg.Done()
			bl.Add(tok)
		}()
		go func() {
			defer wg.Done()
			bl.Contains(tok)
		}()
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		tok := fmt.Sprintf("tok-%d", i)
		if !bl.Contains(tok) {
			t.Errorf("Contains(%q) = false after concurrent Add", tok)
		}
	}
}
