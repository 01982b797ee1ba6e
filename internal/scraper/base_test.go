package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVacancy_Row(t *testing.T) {
	v := Vacancy{Title: "Go Developer", URL: "https://jobs.dou.ua/1/", Description: "d", City: "Київ"}

	assert.Equal(t, len(Columns), len(v.Row()))
	assert.Equal(t, []string{"Go Developer", "https://jobs.dou.ua/1/", "d", "Київ"}, v.Row())
}

func TestVacancy_Enriched(t *testing.T) {
	tests := []struct {
		name     string
		vacancy  Vacancy
		expected bool
	}{
		{name: "fresh card", vacancy: Vacancy{Title: "A", URL: "u1"}, expected: false},
		{name: "sentinels count as fetched", vacancy: Vacancy{Title: "A", URL: "u1", Description: NoDescription, City: UnknownCity}, expected: true},
		{name: "only description", vacancy: Vacancy{Title: "A", URL: "u1", Description: "D1"}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.vacancy.Enriched())
		})
	}
}
