package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/onekill0503/dnd-bot/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestViolationsKeepOrder() {
	vb := errors.NewValidationBuilder()
	vb.RequiredField("voiceChannelID")
	vb.Fieldf("partySize", "must be at least %d", 1)
	vb.RequiredField("creatorID")

	err := vb.Build()
	s.Require().Error(err)
	s.Assert().Equal(
		"INVALID_ARGUMENT: validation failed: voiceChannelID: is required; partySize: must be at least 1; creatorID: is required",
		err.Error(),
	)

	var e *errors.Error
	s.Require().True(errors.As(err, &e))
	s.Assert().Equal([]errors.FieldViolation{
		{Field: "voiceChannelID", Message: "is required"},
		{Field: "partySize", Message: "must be at least 1"},
		{Field: "creatorID", Message: "is required"},
	}, e.Meta["violations"])
}

func (s *ValidationTestSuite) TestValidationBuilder() {
	vb := errors.NewValidationBuilder()
	vb.RequiredField("class").InvalidField("language", "unsupported")

	err := vb.Build()
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *ValidationTestSuite) TestValidationBuilderNoErrors() {
	s.Assert().NoError(errors.NewValidationBuilder().Build())
}

func (s *ValidationTestSuite) TestValidateRequired() {
	testCases := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{"valid value", "Thorin", false},
		{"empty string", "", true},
		{"whitespace only", "   ", true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			errors.ValidateRequired("name", tc.value, vb)
			if tc.shouldErr {
				s.Assert().Error(vb.Build())
			} else {
				s.Assert().NoError(vb.Build())
			}
		})
	}
}

func (s *ValidationTestSuite) TestValidateRange() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("party_level", 0, 1, 20, vb)
	errors.ValidateRange("party_size", 4, 1, 8, vb)

	err := vb.Build()
	s.Require().Error(err)
	s.Assert().Contains(err.Error(), "party_level: must be between 1 and 20")
	s.Assert().NotContains(err.Error(), "party_size")
}
