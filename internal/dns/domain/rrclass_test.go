package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRRClassString(t *testing.T) {
	tests := []struct {
		class RRClass
		want  string
	}{
		{RRClassIN, "IN"},
		{RRClassCH, "CH"},
		{RRClassHS, "HS"},
		{RRClassNONE, "NONE"},
		{RRClassANY, "ANY"},
		{RRClass(42), "CLASS42"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.class.String())
	}
}

func TestRRClassFromString(t *testing.T) {
	for _, class := range []RRClass{RRClassIN, RRClassCH, RRClassHS, RRClassNONE, RRClassANY} {
		assert.Equal(t, class, RRClassFromString(class.String()))
	}
	assert.Equal(t, RRClass(0), RRClassFromString("XX"))
}

func TestRRClassIsValid(t *testing.T) {
	assert.True(t, RRClassIN.IsValid())
	assert.False(t, RRClass(2).IsValid())
}
