package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tsawler/pdfoutline/model"
)

func TestAssignLevelWithoutStatistics(t *testing.T) {
	tests := []struct {
		name string
		size float64
		bold bool
		want model.Level
	}{
		{"bold and large", 14, true, model.H1},
		{"bold and small", 10, true, model.H2},
		{"regular and medium", 12, false, model.H2},
		{"regular and small", 11, false, model.H3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AssignLevel("1. Anything", tt.size, tt.bold, nil))
		})
	}
}

func TestAssignLevelOverrides(t *testing.T) {
	sizes := []float64{24, 18, 14, 12, 10}

	tests := []struct {
		name string
		text string
		want model.Level
	}{
		{"structural name", "Table of Contents", model.H1},
		{"structural name upper", "APPENDIX", model.H1},
		{"structural name japanese", "参考文献", model.H1},
		{"structural name hindi", "परिशिष्ट", model.H1},
		{"structural name must be whole text", "Appendix A", model.H3},
		{"chapter marker", "Chapter 3 Results", model.H1},
		{"section marker", "section 2", model.H1},
		{"japanese marker", "節2 方法", model.H1},
		{"part marker is not promoted", "Part 2 Data", model.H3},
		{"three levels", "2.3.1 Sampling", model.H3},
		{"two levels", "2.3 Sampling", model.H2},
		{"two levels with dot", "2.3. Sampling", model.H2},
		{"one level", "2. Sampling", model.H1},
		{"circled numeral", "① 概要説明", model.H2},
		{"dingbat numeral", "❸ Scope", model.H2},
		{"full-width digits", "２.３ 方法", model.H2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AssignLevel(tt.text, 10, false, sizes))
		})
	}
}

func TestAssignLevelNumberingDepth(t *testing.T) {
	sizeSets := [][]float64{{12}, {20, 16, 12}, {30, 30, 8}}
	for _, sizes := range sizeSets {
		for _, size := range []float64{8, 12, 30} {
			for _, bold := range []bool{false, true} {
				assert.Equal(t, model.H1, AssignLevel("1. A", size, bold, sizes))
				assert.Equal(t, model.H2, AssignLevel("1.1 B", size, bold, sizes))
				assert.Equal(t, model.H3, AssignLevel("1.1.1 C", size, bold, sizes))
			}
		}
	}
}

func TestAssignLevelQuantiles(t *testing.T) {
	// Sorted descending: 24 20 16 14 12; middle is 16.
	sizes := []float64{16, 24, 12, 20, 14}

	tests := []struct {
		name string
		size float64
		want model.Level
	}{
		{"largest", 24, model.H1},
		{"within 90 percent of largest", 21.6, model.H1},
		{"just under", 21.5, model.H2},
		{"at middle", 16, model.H2},
		{"within 90 percent of middle", 14.4, model.H2},
		{"below middle", 14, model.H3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AssignLevel("Findings", tt.size, false, sizes))
		})
	}
}

func TestAssignLevelFewDistinctSizes(t *testing.T) {
	// Five headings but only two distinct sizes.
	sizes := []float64{20, 20, 12, 12, 12}

	assert.Equal(t, model.H1, AssignLevel("Findings", 20, false, sizes))
	assert.Equal(t, model.H1, AssignLevel("Findings", 18, false, sizes))
	assert.Equal(t, model.H2, AssignLevel("Findings", 12, true, sizes))
	assert.Equal(t, model.H3, AssignLevel("Findings", 12, false, sizes))
}

func TestAssignLevelDoesNotMutateInput(t *testing.T) {
	sizes := []float64{12, 24, 18}
	AssignLevel("Findings", 18, false, sizes)
	assert.Equal(t, []float64{12, 24, 18}, sizes)
}
