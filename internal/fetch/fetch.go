// Package fetch fournit des utilitaires légers et testables pour lire les
// sources de snarks : fichiers locaux, URL file: et ressources HTTP, avec
// relance exponentielle des échecs transitoires.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultTimeout   = 15 * time.Second
	DefaultMaxBytes  = 10_000_000
	DefaultUserAgent = "snarksubs/1.0"

	maxRetries = 3
)

// Erreurs exportées
var (
	ErrStatus   = errors.New("unexpected HTTP status")
	ErrTooLarge = errors.New("response body too large")
)

// ReadSource lit la source d'un parser : un chemin local, une URL file:
// ou une URL http(s). Les parsers n'ont pas à distinguer les trois cas.
func ReadSource(ctx context.Context, src string, timeout time.Duration, maxBytes int64) ([]byte, error) {
	switch {
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return FetchBytes(ctx, src, timeout, maxBytes)
	case strings.HasPrefix(src, "file:"):
		u, err := url.Parse(src)
		if err != nil {
			return nil, fmt.Errorf("fetch: invalid file url %q: %w", src, err)
		}
		return os.ReadFile(u.Path)
	default:
		return os.ReadFile(src)
	}
}

// FetchBytes télécharge l'URL et retourne les octets.
// - timeout : si <=0 on utilise DefaultTimeout.
// - maxBytes : si <=0 on utilise DefaultMaxBytes.
// Les erreurs réseau et les statuts 408/429/5xx sont retentés avec un
// backoff exponentiel ; les autres statuts échouent immédiatement.
func FetchBytes(ctx context.Context, rawURL string, timeout time.Duration, maxBytes int64) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	// valider l'URL tôt
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return nil, fmt.Errorf("fetch: invalid url %q: %w", rawURL, err)
	}

	var data []byte
	op := func() error {
		b, err := fetchOnce(ctx, rawURL, timeout, maxBytes)
		if err != nil {
			if !retryable(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		data = b
		return nil
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 1 * time.Second
	exp.MaxInterval = 30 * time.Second
	bo := backoff.WithContext(backoff.WithMaxRetries(exp, maxRetries), ctx)

	if err := backoff.Retry(op, bo); err != nil {
		return nil, err
	}
	return data, nil
}

// statusError retient le code pour la décision de relance.
type statusError struct {
	code   int
	status string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected http status %s", e.status)
}

func (e *statusError) Is(target error) bool { return target == ErrStatus }

// retryable : erreurs réseau et statuts transitoires uniquement. Dépasser
// maxBytes ou recevoir un 4xx franc ne s'arrange pas en réessayant.
func retryable(err error) bool {
	if errors.Is(err, ErrTooLarge) {
		return false
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.code == http.StatusRequestTimeout ||
			se.code == http.StatusTooManyRequests ||
			se.code >= 500
	}
	return true
}

func fetchOnce(ctx context.Context, rawURL string, timeout time.Duration, maxBytes int64) ([]byte, error) {
	// timeout via context
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: new request: %w", err)
	}
	req.Header.Set("User-Agent", DefaultUserAgent)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch: %w", &statusError{code: resp.StatusCode, status: resp.Status})
	}

	// si Content-Length connu et supérieur à maxBytes -> échouer vite
	if resp.ContentLength > 0 && resp.ContentLength > maxBytes {
		return nil, fmt.Errorf("fetch: content-length %d exceeds limit %d: %w", resp.ContentLength, maxBytes, ErrTooLarge)
	}

	r := io.LimitReader(resp.Body, maxBytes+1) // +1 pour détecter dépassement
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("fetch: read body: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("fetch: body too large (>%d bytes): %w", maxBytes, ErrTooLarge)
	}
	return data, nil
}

// Nap dort d seconds ou jusqu'à annulation du contexte, selon la première
// échéance. Utilisé par les parsers paginés entre deux requêtes.
func Nap(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// SplitLines découpe un contenu texte en lignes, tolérant les fins de
// ligne CRLF des logs venus de Windows.
func SplitLines(data []byte) []string {
	s := strings.ReplaceAll(string(data), "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
