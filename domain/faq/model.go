package faq

import (
	"time"

	"github.com/coinpass/be-content-platform/pkg/sanitize"
)

// FAQ is one question/answer pair in the exchange_faqs table. Same
// placeholder-id lifecycle as exchanges.
type FAQ struct {
	ID         int64     `db:"id" json:"id"`
	QuestionKo string    `db:"question_ko" json:"question_ko"`
	AnswerKo   string    `db:"answer_ko" json:"answer_ko"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

var Schema = sanitize.FieldSchema{
	"question_ko": sanitize.KindText,
	"answer_ko":   sanitize.KindAdminText,
}

func (f FAQ) IsPlaceholder() bool {
	return f.ID < 0
}

func (f FAQ) Columns() map[string]interface{} {
	return map[string]interface{}{
		"question_ko": f.QuestionKo,
		"answer_ko":   f.AnswerKo,
	}
}
