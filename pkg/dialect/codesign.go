package dialect

import (
	"fmt"

	"github.com/google/uuid"
	"go.starlark.net/starlark"
)

// Signer is an opaque code-signing credential handle created by the
// code_signer() extension function. Scripts register signers into the
// build context with activate(); the pipeline consults the context's
// signer list when it produces signable artifacts.
type Signer struct {
	id              string
	name            string
	keyPath         string
	certPath        string
	timestampServer string

	// session is non-nil while an external signing token session is
	// open. An open session blocks freezing until the script closes it.
	session *tokenSession
	frozen  bool
}

type tokenSession struct {
	handle string
}

func registerCodeSigning(predeclared starlark.StringDict) {
	predeclared["code_signer"] = starlark.NewBuiltin("code_signer", newCodeSigner)
}

func newCodeSigner(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name, keyPath, certPath string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"name", &name, "key_path", &keyPath, "cert_path", &certPath); err != nil {
		return nil, err
	}

	return &Signer{
		id:       uuid.NewString(),
		name:     name,
		keyPath:  keyPath,
		certPath: certPath,
	}, nil
}

// String implements starlark.Value.
func (s *Signer) String() string {
	return fmt.Sprintf("<code_signer %q>", s.name)
}

// Type implements starlark.Value.
func (s *Signer) Type() string {
	return "CodeSigner"
}

// Freeze implements starlark.Value.
func (s *Signer) Freeze() {
	s.frozen = true
}

// Truth implements starlark.Value.
func (s *Signer) Truth() starlark.Bool {
	return starlark.True
}

// Hash implements starlark.Value.
func (s *Signer) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: %s", s.Type())
}

// FreezeBlocked refuses the freeze while a token session is open; the
// session handle is external mutable state the frozen value could not
// relinquish.
func (s *Signer) FreezeBlocked() error {
	if s.session != nil {
		return fmt.Errorf("signer %q has an open token session", s.name)
	}
	return nil
}

// ID returns the opaque signer handle identifier.
func (s *Signer) ID() string {
	return s.id
}

// Name returns the signer's script-visible name.
func (s *Signer) Name() string {
	return s.name
}

// Attr implements starlark.HasAttrs.
func (s *Signer) Attr(name string) (starlark.Value, error) {
	switch name {
	case "id":
		return starlark.String(s.id), nil
	case "name":
		return starlark.String(s.name), nil
	case "key_path":
		return starlark.String(s.keyPath), nil
	case "cert_path":
		return starlark.String(s.certPath), nil
	case "timestamp_server":
		return starlark.String(s.timestampServer), nil
	case "activate":
		return starlark.NewBuiltin("activate", s.activate), nil
	case "set_timestamp_server":
		return starlark.NewBuiltin("set_timestamp_server", s.setTimestampServer), nil
	case "open_token_session":
		return starlark.NewBuiltin("open_token_session", s.openTokenSession), nil
	case "close_token_session":
		return starlark.NewBuiltin("close_token_session", s.closeTokenSession), nil
	}
	return nil, nil
}

// AttrNames implements starlark.HasAttrs.
func (s *Signer) AttrNames() []string {
	return []string{
		"activate",
		"cert_path",
		"close_token_session",
		"id",
		"key_path",
		"name",
		"open_token_session",
		"set_timestamp_server",
		"timestamp_server",
	}
}

// activate registers the signer into the build context.
func (s *Signer) activate(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}

	ctx, err := Resolve(thread)
	if err != nil {
		return nil, err
	}
	if err := ctx.AddSigner(s); err != nil {
		return nil, err
	}

	logger := ctx.Logger()
	logger.Info().
		Str("signer", s.name).
		Str("id", s.id).
		Msg("registered code signer")

	return starlark.None, nil
}

func (s *Signer) setTimestampServer(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var url string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "url", &url); err != nil {
		return nil, err
	}

	if s.frozen {
		return nil, fmt.Errorf("cannot set timestamp server on signer %q: %w", s.name, ErrFrozen)
	}
	s.timestampServer = url

	return starlark.None, nil
}

func (s *Signer) openTokenSession(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}

	if s.frozen {
		return nil, fmt.Errorf("cannot open token session on signer %q: %w", s.name, ErrFrozen)
	}
	if s.session != nil {
		return nil, fmt.Errorf("signer %q already has an open token session", s.name)
	}
	s.session = &tokenSession{handle: uuid.NewString()}

	return starlark.None, nil
}

func (s *Signer) closeTokenSession(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}

	if s.session == nil {
		return nil, fmt.Errorf("signer %q has no open token session", s.name)
	}
	s.session = nil

	return starlark.None, nil
}
