package drafter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/WanderingWalnut/Grantly/common/httpclient"
	"github.com/WanderingWalnut/Grantly/common/llm"
	"github.com/WanderingWalnut/Grantly/common/logger"
	"github.com/WanderingWalnut/Grantly/internal/domain"
)

const (
	DefaultMaxPDFChars = 15000
	DefaultTemperature = 0.2
	DefaultMaxTokens   = 4096

	maxPDFBytes = 20 << 20

	opDownload = "drafter.download_pdf"
	opExtract  = "drafter.extract_text"
	opGenerate = "drafter.generate"
)

type Request struct {
	PDFURL              string
	OrganizationSummary string
}

type Draft struct {
	Answers          Answers `json:"answers"`
	Model            string  `json:"model"`
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
}

// Drafter turns an application PDF and an organization summary into draft answers.
type Drafter interface {
	Draft(ctx context.Context, req Request) (*Draft, error)
}

type Config struct {
	MaxPDFChars int
	MaxTokens   int
	Timeout     time.Duration
	HTTPClient  *http.Client
}

type drafter struct {
	llm       llm.Client
	extractor TextExtractor
	http      *http.Client
	cfg       Config
}

// New builds a Drafter. A nil llmClient yields a Drafter that fails every call
// with a configuration error, so the HTTP surface can still be mounted.
func New(llmClient llm.Client, extractor TextExtractor, cfg Config) Drafter {
	if cfg.MaxPDFChars <= 0 {
		cfg.MaxPDFChars = DefaultMaxPDFChars
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if extractor == nil {
		extractor = NewPDFExtractor()
	}
	client := cfg.HTTPClient
	if client == nil {
		client = httpclient.New(httpclient.Config{Timeout: cfg.Timeout, UserAgent: "grantly-drafter/1.0"})
	}
	return &drafter{llm: llmClient, extractor: extractor, http: client, cfg: cfg}
}

func (d *drafter) Draft(ctx context.Context, req Request) (*Draft, error) {
	if d.llm == nil {
		return nil, domain.ConfigurationError(opGenerate, "DRAFT_LLM_API_KEY is not configured")
	}

	data, err := d.download(ctx, req.PDFURL)
	if err != nil {
		return nil, err
	}

	text, err := d.extractor.Extract(data, d.cfg.MaxPDFChars)
	if err != nil {
		return nil, domain.DataShapeError(opExtract, err.Error())
	}
	if strings.TrimSpace(text) == "" {
		return nil, domain.DataShapeError(opExtract, "application pdf has no extractable text")
	}

	sp := logger.StartSpan(ctx, "drafter.generate")
	defer sp.End()
	sp.SetAttributes(
		attribute.String("llm.model", d.llm.Model()),
		attribute.Int("drafter.pdf_chars", len([]rune(text))),
	)

	var answers Answers
	resp, err := d.llm.Chat(sp.Context(), llm.Request{
		SystemPrompt: systemPrompt,
		UserPrompt:   buildUserPrompt(text, req.OrganizationSummary),
		SchemaName:   "grant_application_draft",
		Schema:       llm.GenerateSchema[Answers](),
		MaxTokens:    d.cfg.MaxTokens,
		Temperature:  llm.Temp(DefaultTemperature),
	}, &answers)
	if err != nil {
		sp.Fail(err)
		return nil, classifyLLMError(err)
	}
	sp.SetAttributes(
		attribute.Int("llm.prompt_tokens", resp.PromptTokens),
		attribute.Int("llm.completion_tokens", resp.CompletionTokens),
	)

	slog.InfoContext(ctx, "draft generated",
		"model", d.llm.Model(),
		"pdf_chars", len([]rune(text)),
		"prompt_tokens", resp.PromptTokens,
		"completion_tokens", resp.CompletionTokens)

	return &Draft{
		Answers:          answers,
		Model:            d.llm.Model(),
		PromptTokens:     resp.PromptTokens,
		CompletionTokens: resp.CompletionTokens,
	}, nil
}

func (d *drafter) download(ctx context.Context, pdfURL string) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, pdfURL, nil)
	if err != nil {
		return nil, domain.ValidationError(opDownload, fmt.Sprintf("invalid pdf url: %v", err))
	}
	httpReq.Header.Set("Accept", "application/pdf")

	resp, err := d.http.Do(httpReq)
	if err != nil {
		return nil, domain.UpstreamTransportError(opDownload, isTimeout(err), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, domain.UpstreamHTTPError(opDownload, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPDFBytes+1))
	if err != nil {
		return nil, domain.UpstreamTransportError(opDownload, isTimeout(err), err)
	}
	if len(data) > maxPDFBytes {
		return nil, domain.DataShapeError(opDownload, "application pdf exceeds 20 MiB")
	}
	return data, nil
}

func classifyLLMError(err error) error {
	if status, body, ok := llm.APIStatus(err); ok {
		return domain.UpstreamHTTPError(opGenerate, status, body)
	}
	if errors.Is(err, context.Canceled) || isTimeout(err) {
		return domain.UpstreamTransportError(opGenerate, isTimeout(err), err)
	}
	if errors.Is(err, llm.ErrMalformedReply) {
		return domain.DataShapeError(opGenerate, err.Error())
	}
	return domain.UpstreamTransportError(opGenerate, false, err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
