package dialect

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"go.starlark.net/starlark"
)

func TestBindResolve_IdentityPreserved(t *testing.T) {
	thread := &starlark.Thread{Name: "test"}
	ctx := NewContext(zerolog.Nop())

	if err := Bind(thread, ctx); err != nil {
		t.Fatalf("Bind() error: %v", err)
	}

	// Mutations made before resolve must be visible after: resolve hands
	// back the same instance, not a copy.
	if err := ctx.AddSigner(&Signer{id: "s1", name: "first"}); err != nil {
		t.Fatal(err)
	}

	resolved, err := Resolve(thread)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if resolved != ctx {
		t.Errorf("Resolve() returned a different instance")
	}
	if len(resolved.Signers()) != 1 {
		t.Errorf("mutation before resolve not visible: %d signers", len(resolved.Signers()))
	}
}

func TestResolve_UnboundThread(t *testing.T) {
	thread := &starlark.Thread{Name: "never-bound"}

	_, err := Resolve(thread)
	if err == nil {
		t.Fatal("Resolve() on an unbound thread should fail")
	}
	if !errors.Is(err, ErrContextNotFound) {
		t.Errorf("expected ErrContextNotFound, got %v", err)
	}
}

func TestResolve_ErrorIsDistinct(t *testing.T) {
	thread := &starlark.Thread{Name: "never-bound"}

	_, err := Resolve(thread)
	if errors.Is(err, ErrFrozen) {
		t.Errorf("context-not-found must not be conflated with other error kinds")
	}
}

func TestBind_DoubleBindRejected(t *testing.T) {
	thread := &starlark.Thread{Name: "test"}

	if err := Bind(thread, NewContext(zerolog.Nop())); err != nil {
		t.Fatalf("first Bind() error: %v", err)
	}
	if err := Bind(thread, NewContext(zerolog.Nop())); err == nil {
		t.Errorf("second Bind() on the same thread should fail")
	}
}
