package fetchclient

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/5u5urrus/retriever/internal/envelope"
	"github.com/5u5urrus/retriever/internal/logging"
	"github.com/5u5urrus/retriever/internal/ratelimit"
)

// outcome classifies one fetch attempt for the retry state machine, the Go
// analogue of the reference system's implicit exception-driven control flow.
type outcome int

const (
	outcomeOK outcome = iota
	outcomeRetry
	outcomeFatal
)

// classify turns a raw (body, status, err) attempt result into an outcome.
// Transport errors, anti-bot statuses and any other 5xx status are
// retryable; an empty body is outcomeFatal; anything else that came back
// with a body, even a non-2xx one such as a 404, is accepted as-is (the
// caller decides what to do with the status).
func classify(body []byte, status int, err error) outcome {
	if err != nil {
		return outcomeRetry
	}
	if IsAntiBotStatus(status) {
		return outcomeRetry
	}
	if status >= 500 {
		return outcomeRetry
	}
	if len(body) == 0 {
		return outcomeFatal
	}
	return outcomeOK
}

// RunWithRetry drives one backend through up to retries attempts, sleeping
// 2^attempt+jitter seconds between failures (attempt is 1-based: the sleep
// after the first failed attempt uses exponent 1, after the second failed
// attempt exponent 2, and so on). It returns the last body on success, or an
// UpstreamFetchFailedError once the retry budget is exhausted.
func RunWithRetry(ctx context.Context, client Client, rawURL string, hdrs HeaderSource, retries int) ([]byte, error) {
	var lastErr error
	var lastStatus int

	for attempt := 1; attempt <= retries; attempt++ {
		body, status, err := client.Fetch(ctx, rawURL, hdrs.Build(rawURL))
		switch classify(body, status, err) {
		case outcomeOK:
			return body, nil
		case outcomeFatal:
			lastErr = err
			lastStatus = status
			if attempt < retries {
				logging.L.WithFields(loggingFields(client.Name(), rawURL, attempt, status)).Warn("fetch returned empty body, retrying")
			}
		case outcomeRetry:
			lastErr = err
			lastStatus = status
			if IsAntiBotStatus(status) {
				logging.L.WithFields(loggingFields(client.Name(), rawURL, attempt, status)).Warn("anti-bot status suspected")
			}
		}

		if attempt == retries {
			break
		}
		if sleepErr := ratelimit.Sleep(ctx, attempt); sleepErr != nil {
			return nil, sleepErr
		}
	}

	reason := reasonFor(lastStatus, lastErr)
	return nil, &envelope.UpstreamFetchFailedError{
		ClientName: client.Name(),
		URL:        rawURL,
		LastReason: reason,
	}
}

func reasonFor(status int, err error) string {
	if err != nil {
		return err.Error()
	}
	if status == 0 {
		return "empty response body"
	}
	return "http status " + itoa(status)
}

func itoa(v int) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [12]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func loggingFields(client, url string, attempt, status int) logrus.Fields {
	return logrus.Fields{
		"client":  client,
		"url":     url,
		"attempt": attempt,
		"status":  status,
	}
}

// ErrContextDone is returned by callers that want to distinguish a
// cancelled retry loop from an exhausted one.
var ErrContextDone = errors.New("context cancelled during retry")
