package vocab

import (
	"sort"
	"time"

	"gorm.io/gorm"
)

// Word is one vocabulary entry for drills.
type Word struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Word       string         `json:"word" gorm:"size:64;not null;index"`
	Definition string         `json:"definition" gorm:"not null"`
	Example    string         `json:"example"`
	ExamLevel  string         `json:"exam_level" gorm:"size:16;index"`
	CreatedAt  time.Time      `json:"createdAt"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

// Review records one drill answer for a user/word pair.
type Review struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	WordID    uint      `json:"word_id" gorm:"index;not null"`
	Correct   bool      `json:"correct"`
	CreatedAt time.Time `json:"createdAt"`
}

// WordStats is the per-word review summary drill selection works from.
type WordStats struct {
	Word        Word
	LastCorrect time.Time // zero when never answered correctly
	Attempts    int
}

// SelectDrill picks up to n words for a drill, least-recently-correct
// first; never-correct words come before everything else, fewest attempts
// first. Deterministic: ties break on word ID.
func SelectDrill(stats []WordStats, n int) []Word {
	sorted := make([]WordStats, len(stats))
	copy(sorted, stats)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		aNever := a.LastCorrect.IsZero()
		bNever := b.LastCorrect.IsZero()
		if aNever != bNever {
			return aNever
		}
		if aNever && bNever {
			if a.Attempts != b.Attempts {
				return a.Attempts < b.Attempts
			}
			return a.Word.ID < b.Word.ID
		}
		if !a.LastCorrect.Equal(b.LastCorrect) {
			return a.LastCorrect.Before(b.LastCorrect)
		}
		return a.Word.ID < b.Word.ID
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	out := make([]Word, 0, n)
	for _, s := range sorted[:n] {
		out = append(out, s.Word)
	}
	return out
}
