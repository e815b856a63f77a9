// Package storagetest holds the behavior every storage backend must share.
package storagetest

import (
	"context"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/tourneytrack/internal/storage"
)

// Suite runs the common key/value contract against a backend.
// Embed it and set Storage in SetupTest.
type Suite struct {
	suite.Suite
	Storage storage.Storage
	Ctx     context.Context
}

func (s *Suite) TestGetMissingKey() {
	_, err := s.Storage.Get(s.Ctx, "teams")
	s.ErrorIs(err, storage.ErrNotFound)
}

func (s *Suite) TestSetAndGet() {
	err := s.Storage.Set(s.Ctx, "teams", []byte(`[{"id":"T1"}]`))
	s.Require().NoError(err)

	value, err := s.Storage.Get(s.Ctx, "teams")
	s.Require().NoError(err)
	s.JSONEq(`[{"id":"T1"}]`, string(value))
}

func (s *Suite) TestSetOverwrites() {
	_ = s.Storage.Set(s.Ctx, "fixtures", []byte(`[1,2,3]`))
	err := s.Storage.Set(s.Ctx, "fixtures", []byte(`[4]`))
	s.Require().NoError(err)

	value, err := s.Storage.Get(s.Ctx, "fixtures")
	s.Require().NoError(err)
	s.Equal(`[4]`, string(value))
}

func (s *Suite) TestKeysAreIndependent() {
	_ = s.Storage.Set(s.Ctx, "teams", []byte(`"a"`))
	_ = s.Storage.Set(s.Ctx, "registrations", []byte(`"b"`))

	teams, err := s.Storage.Get(s.Ctx, "teams")
	s.Require().NoError(err)
	regs, err := s.Storage.Get(s.Ctx, "registrations")
	s.Require().NoError(err)

	s.Equal(`"a"`, string(teams))
	s.Equal(`"b"`, string(regs))
}

func (s *Suite) TestDelete() {
	_ = s.Storage.Set(s.Ctx, "currentUser", []byte(`{"role":"organizer"}`))

	err := s.Storage.Delete(s.Ctx, "currentUser")
	s.Require().NoError(err)

	_, err = s.Storage.Get(s.Ctx, "currentUser")
	s.ErrorIs(err, storage.ErrNotFound)
}

func (s *Suite) TestDeleteMissingKeyIsNoop() {
	err := s.Storage.Delete(s.Ctx, "nonexistent")
	s.NoError(err)
}

func (s *Suite) TestStoredValueIsNotAliased() {
	buf := []byte(`"original"`)
	_ = s.Storage.Set(s.Ctx, "teams", buf)
	copy(buf, `"mutated!"`)

	value, err := s.Storage.Get(s.Ctx, "teams")
	s.Require().NoError(err)
	s.Equal(`"original"`, string(value))
}
