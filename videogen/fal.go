package videogen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const DefaultBaseURL = "https://queue.fal.run"

type FalConfig struct {
	BaseURL      string
	PollInterval time.Duration
	HTTPClient   *http.Client
}

// Fal 通过 fal.ai 的队列接口生成视频：提交 -> 轮询状态 -> 取结果
type Fal struct {
	apiKey string
	cfg    FalConfig
	logger zerolog.Logger
}

func NewFal(cfg FalConfig, apiKey string) *Fal {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Fal{
		apiKey: apiKey,
		cfg:    cfg,
		logger: log.With().Str("component", "fal").Logger(),
	}
}

type submitResponse struct {
	RequestID   string `json:"request_id"`
	StatusURL   string `json:"status_url"`
	ResponseURL string `json:"response_url"`
}

type statusResponse struct {
	Status        string `json:"status"`
	QueuePosition int    `json:"queue_position"`
	Logs          []struct {
		Message string `json:"message"`
	} `json:"logs"`
}

type outputResponse struct {
	Video *struct {
		URL string `json:"url"`
	} `json:"video"`
	Seed *int64 `json:"seed"`
}

func (f *Fal) Generate(ctx context.Context, req Request) (*Result, error) {
	if f.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	key := req.Model
	if key == "" {
		key = DefaultModel
	}
	model, ok := Lookup(key)
	if !ok {
		return nil, &Error{Kind: KindGeneric, Message: fmt.Sprintf("unknown model %q", key)}
	}

	req.report(Progress{Percent: UnknownPercent, Status: "Starting generation..."})

	var sub submitResponse
	if err := f.do(ctx, http.MethodPost, f.cfg.BaseURL+"/"+model.ID, BuildInput(key, req), &sub); err != nil {
		return nil, err
	}
	if sub.StatusURL == "" {
		sub.StatusURL = fmt.Sprintf("%s/%s/requests/%s/status", f.cfg.BaseURL, model.ID, sub.RequestID)
	}
	if sub.ResponseURL == "" {
		sub.ResponseURL = fmt.Sprintf("%s/%s/requests/%s", f.cfg.BaseURL, model.ID, sub.RequestID)
	}
	f.logger.Info().Str("model", model.ID).Str("requestId", sub.RequestID).Msg("generation submitted")

	if err := f.poll(ctx, sub.StatusURL, req); err != nil {
		return nil, err
	}

	var out outputResponse
	if err := f.do(ctx, http.MethodGet, sub.ResponseURL, nil, &out); err != nil {
		return nil, err
	}
	if out.Video == nil || out.Video.URL == "" {
		return nil, ErrNoVideoURL
	}
	return &Result{VideoUrl: out.Video.URL, Seed: out.Seed}, nil
}

// poll 按固定间隔查询状态直到 COMPLETED；未知状态视为失败，超时由 ctx 控制
func (f *Fal) poll(ctx context.Context, statusURL string, req Request) error {
	ticker := time.NewTicker(f.cfg.PollInterval)
	defer ticker.Stop()

	url := statusURL
	if strings.Contains(url, "?") {
		url += "&logs=1"
	} else {
		url += "?logs=1"
	}

	for {
		var st statusResponse
		if err := f.do(ctx, http.MethodGet, url, nil, &st); err != nil {
			return err
		}
		switch st.Status {
		case "IN_QUEUE":
			req.report(Progress{Percent: UnknownPercent, Status: "Waiting in queue..."})
		case "IN_PROGRESS":
			logs := make([]string, 0, len(st.Logs))
			for _, l := range st.Logs {
				logs = append(logs, l.Message)
			}
			req.report(Progress{Percent: UnknownPercent, Status: "Generating video...", Logs: logs})
		case "COMPLETED":
			return nil
		default:
			// 队列只会返回上面三种状态，其余一律按失败处理，避免无限轮询
			f.logger.Warn().Str("status", st.Status).Str("statusUrl", statusURL).Msg("unexpected queue status")
			return &Error{Kind: KindGeneric, Message: fmt.Sprintf("unexpected queue status %q", st.Status)}
		}

		select {
		case <-ctx.Done():
			return &Error{Kind: KindGeneric, Message: "generation aborted", Err: ctx.Err()}
		case <-ticker.C:
		}
	}
}

func (f *Fal) do(ctx context.Context, method, url string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindGeneric, Message: "marshal request failed", Err: err}
		}
		reader = bytes.NewReader(b)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return &Error{Kind: KindGeneric, Message: "create request failed", Err: err}
	}
	httpReq.Header.Set("Authorization", "Key "+f.apiKey)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := f.cfg.HTTPClient.Do(httpReq)
	if err != nil {
		return &Error{Kind: KindGeneric, Message: "fal request failed", Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrInvalidAPIKey
	case resp.StatusCode == http.StatusPaymentRequired:
		return ErrInsufficientCredits
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &Error{Kind: KindGeneric, Message: fmt.Sprintf("fal status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindGeneric, Message: "decode fal response failed", Err: err}
	}
	return nil
}
