package source

import (
	"bufio"
	"context"
	"fmt"
	"net/http"

	pcerrors "github.com/alexisbeaulieu97/pipecheck/pkg/errors"
)

// HTTPSource reads records from a remote object served over HTTP(S). The
// path is the object URL; the body is consumed line by line.
type HTTPSource struct {
	client *http.Client
}

// NewHTTPSource returns an HTTP-backed Source. A nil client falls back to
// http.DefaultClient.
func NewHTTPSource(client *http.Client) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{client: client}
}

var _ Source = (*HTTPSource)(nil)

func (s *HTTPSource) Open(ctx context.Context, path string) (RecordReader, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, pcerrors.NewPermanentError(path, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		// Transport-level failures (reset, refused, timeout) are the
		// textbook transient case.
		return nil, pcerrors.NewTransientError(path, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		statusErr := fmt.Errorf("unexpected status %s", resp.Status)
		if retryableStatus(resp.StatusCode) {
			return nil, pcerrors.NewTransientError(path, statusErr)
		}
		return nil, pcerrors.NewPermanentError(path, statusErr)
	}

	return &httpReader{path: path, resp: resp, scanner: newRecordScanner(resp.Body)}, nil
}

// retryableStatus reports whether a non-200 status is worth a fresh attempt.
func retryableStatus(code int) bool {
	return code >= 500 || code == http.StatusTooManyRequests || code == http.StatusRequestTimeout
}

type httpReader struct {
	path    string
	resp    *http.Response
	scanner *bufio.Scanner
	record  string
	err     error
	closed  bool
}

func (r *httpReader) Next() bool {
	if r.err != nil || r.closed {
		return false
	}
	if r.scanner.Scan() {
		r.record = r.scanner.Text()
		return true
	}
	if scanErr := r.scanner.Err(); scanErr != nil {
		r.err = classifyScanError(r.path, scanErr)
	}
	return false
}

func (r *httpReader) Record() string { return r.record }

func (r *httpReader) Err() error { return r.err }

func (r *httpReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.resp.Body.Close()
}
