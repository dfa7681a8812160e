package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "allograft/pkg/domain"
	dErrors "allograft/pkg/domain-errors"
)

func TestCriteriaAdmits(t *testing.T) {
	c := Criteria{AgeMin: 30, AgeMax: 50, BMIMin: 18, BMIMax: 30}

	// Bounds are inclusive.
	assert.True(t, c.Admits(30, 18))
	assert.True(t, c.Admits(50, 30))
	assert.False(t, c.Admits(29, 22))
	assert.False(t, c.Admits(51, 22))
	assert.False(t, c.Admits(35, 17))
	assert.False(t, c.Admits(35, 31))
}

func TestCriteriaValidate(t *testing.T) {
	require.NoError(t, Criteria{AgeMin: 1, AgeMax: 1, BMIMin: 1, BMIMax: 1}.Validate())

	err := Criteria{AgeMin: 40, AgeMax: 30, BMIMin: 18, BMIMax: 30}.Validate()
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

	err = Criteria{AgeMin: 0, AgeMax: 30, BMIMin: 18, BMIMax: 30}.Validate()
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestNewMatchDerivesOrganID(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	m := NewMatch(100, 1, Criteria{AgeMin: 30, AgeMax: 50, BMIMin: 18, BMIMax: 30}, now)

	assert.Equal(t, id.OrganID(100), m.OrganID)
	assert.Equal(t, now, m.MatchedAt)
}
