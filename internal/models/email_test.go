package models_test

import (
	"testing"

	"building/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestEmailKey(t *testing.T) {
	tests := []struct {
		a, b  string
		equal bool
	}{
		{"ana@x.com", "ANA@X.COM", true},
		{"José@x.com", "JOSE@x.com", true},
		{"renée@x.com", "Renee@X.com", true},
		{"ana@x.com", "anna@x.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			if tt.equal {
				assert.Equal(t, models.EmailKey(tt.a), models.EmailKey(tt.b))
			} else {
				assert.NotEqual(t, models.EmailKey(tt.a), models.EmailKey(tt.b))
			}
		})
	}
}
