package senders

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/25x8/dashboard-widgets/internal/crypto"
	"github.com/25x8/dashboard-widgets/internal/models"
)

const batchPath = "/api/metrics/batch"

// Sender отправляет пачку карточек на сервер дашборда
type Sender interface {
	SendBatch(ctx context.Context, metrics []models.Metric) error
}

// HTTPSender - структура для отправки метрик на сервер
type HTTPSender struct {
	ServerURL string
	Key       string
	Client    *http.Client
}

// NewHTTPSender - конструктор для HTTPSender; адрес без схемы дополняется http://
func NewHTTPSender(serverURL, key string) *HTTPSender {
	if !strings.HasPrefix(serverURL, "http://") && !strings.HasPrefix(serverURL, "https://") {
		serverURL = "http://" + serverURL
	}
	return &HTTPSender{
		ServerURL: strings.TrimRight(serverURL, "/"),
		Key:       key,
		Client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// SendBatch сжимает JSON gzip'ом и отправляет одним запросом.
// Подпись HashSHA256 считается по несжатому телу.
func (s *HTTPSender) SendBatch(ctx context.Context, metrics []models.Metric) error {
	if len(metrics) == 0 {
		return nil
	}

	jsonData, err := json.Marshal(metrics)
	if err != nil {
		return err
	}

	var compressedBody bytes.Buffer
	gzipWriter := gzip.NewWriter(&compressedBody)
	if _, err = gzipWriter.Write(jsonData); err != nil {
		return err
	}
	if err = gzipWriter.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.ServerURL+batchPath, &compressedBody)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Encoding", "gzip")
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("Content-Type", "application/json")
	if s.Key != "" {
		req.Header.Set("HashSHA256", crypto.CalculateHash(jsonData, s.Key))
	}

	resp, err := s.client().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode, Body: readError(resp)}
	}

	_, err = io.Copy(io.Discard, resp.Body)
	return err
}

func (s *HTTPSender) client() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	return http.DefaultClient
}

// StatusError ответ сервера с кодом, отличным от 200
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("server returned status %d", e.Code)
	}
	return fmt.Sprintf("server returned status %d: %s", e.Code, e.Body)
}

// IsClientError - запрос отклонен сервером, повтор не поможет
func IsClientError(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code >= 400 && se.Code < 500
}

func readError(resp *http.Response) string {
	var body io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return ""
		}
		defer gr.Close()
		body = gr
	}
	data, err := io.ReadAll(io.LimitReader(body, 512))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
