package tokenizer

import "testing"

func TestTokenPool(t *testing.T) {
	p := newTokenPool()
	if p.last() != nil {
		t.Error("expected nil last on an empty pool")
	}

	p.push(Token{Type: IDENTIFIER, Lexeme: "a"})
	p.push(Token{Type: MACRO, Lexeme: "#define"})
	if p.len() != 2 {
		t.Fatalf("expected 2 tokens, got %d", p.len())
	}

	// Mutations through last must be visible in the stored token
	p.last().Multi = First
	if p.at(1).Multi != First {
		t.Error("expected mutation through last to stick")
	}

	toks := p.detach()
	if len(toks) != 2 {
		t.Fatalf("expected 2 detached tokens, got %d", len(toks))
	}
	if p.len() != 0 {
		t.Error("expected an empty pool after detach")
	}
}

func TestTokenPoolGrowth(t *testing.T) {
	p := newTokenPool()
	for i := 0; i < initialPoolSize*3; i++ {
		p.push(Token{Type: SPACE})
	}
	if p.len() != initialPoolSize*3 {
		t.Fatalf("expected %d tokens, got %d", initialPoolSize*3, p.len())
	}
}
