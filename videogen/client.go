package videogen

import (
	"context"
	"errors"
)

// UnknownPercent 远端 API 不提供数值进度时使用
const UnknownPercent = -1

type Progress struct {
	Percent int      `json:"percent"`
	Status  string   `json:"status"`
	Logs    []string `json:"logs,omitempty"`
}

type ProgressFunc func(Progress)

type Request struct {
	Prompt         string
	Model          string
	NegativePrompt string
	Seed           *int64
	OnProgress     ProgressFunc
}

func (r Request) report(p Progress) {
	if r.OnProgress != nil {
		r.OnProgress(p)
	}
}

type Result struct {
	VideoUrl string `json:"videoUrl"`
	Seed     *int64 `json:"seed,omitempty"`
}

// Client 视频生成能力。调用后不能取消，只能由 ctx 结束等待。
type Client interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}

// Kind 生成失败的类别
type Kind string

const (
	KindAuth    Kind = "auth"
	KindPayment Kind = "payment"
	KindGeneric Kind = "generic"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

var (
	ErrMissingAPIKey       = &Error{Kind: KindAuth, Message: "API key not configured. Please add your fal.ai API key in settings."}
	ErrInvalidAPIKey       = &Error{Kind: KindAuth, Message: "Invalid API key. Please check your fal.ai API key."}
	ErrInsufficientCredits = &Error{Kind: KindPayment, Message: "Insufficient credits. Please add credits to your fal.ai account."}
	ErrNoVideoURL          = &Error{Kind: KindGeneric, Message: "No video URL returned from API"}
)

// KindOf 非 *Error 一律视为 generic
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return KindGeneric
}
