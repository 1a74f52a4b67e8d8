package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tharaka19/CCIMS-sub000/internal/application/dto"
	"github.com/tharaka19/CCIMS-sub000/internal/application/ports"
	"github.com/tharaka19/CCIMS-sub000/internal/domain"
)

// HeaderTransactionID agrupa en los logs de ambos servicios las llamadas de un mismo movimiento.
const HeaderTransactionID = "X-Transaction-ID"

const maxBody = 256 * 1024

// envelope sobre {code, message, content} con el contenido sin decodificar.
type envelope struct {
	Code    string          `json:"code"`
	Message json.RawMessage `json:"message"`
	Content json.RawMessage `json:"content"`
}

// client base HTTP compartido por los adaptadores remotos.
type client struct {
	name       string
	baseURL    string
	httpClient *http.Client
}

func newClient(name, baseURL string, timeout time.Duration) client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return client{
		name:       name,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// call envía la petición con el bearer token y el id de transacción del contexto y decodifica
// el contenido del sobre en out. Los fallos se clasifican con los errores de dominio.
func (c client) call(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: serializar request: %w", c.name, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: crear HTTP request: %w", c.name, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if txID := ports.TransactionIDFromContext(ctx); txID != "" {
		req.Header.Set(HeaderTransactionID, txID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %s: timeout o cancelación: %v", domain.ErrUpstreamUnavailable, c.name, ctx.Err())
		}
		return fmt.Errorf("%w: %s: llamada HTTP fallida: %v", domain.ErrUpstreamUnavailable, c.name, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("%w: %s: leer respuesta: %v", domain.ErrUpstreamUnavailable, c.name, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= 500 {
			return fmt.Errorf("%w: %s: HTTP %d", domain.ErrUpstreamUnavailable, c.name, resp.StatusCode)
		}
		return fmt.Errorf("%w: %s: respuesta no es JSON (HTTP %d)", domain.ErrUpstreamUnavailable, c.name, resp.StatusCode)
	}

	if resp.StatusCode >= 300 || (env.Code != "" && env.Code != dto.CodeSuccess) {
		return c.classify(resp.StatusCode, env)
	}
	if out == nil {
		return nil
	}
	if len(env.Content) == 0 || string(env.Content) == "null" {
		return domain.NewError(domain.ErrNotFound, messageText(env.Message))
	}
	if err := json.Unmarshal(env.Content, out); err != nil {
		return fmt.Errorf("%w: %s: decodificar contenido: %v", domain.ErrUpstreamUnavailable, c.name, err)
	}
	return nil
}

// classify traduce el estado HTTP (o el código del sobre) del servicio remoto a un error de dominio.
func (c client) classify(status int, env envelope) error {
	msgs := messages(env.Message)
	text := strings.Join(msgs, " ")
	switch {
	case status == http.StatusUnprocessableEntity || env.Code == dto.CodeRejected:
		if len(msgs) == 0 {
			msgs = []string{c.name + " rechazó la petición"}
		}
		return domain.NewValidationError(msgs...)
	case status == http.StatusNotFound || env.Code == dto.CodeNoData:
		return domain.NewError(domain.ErrNotFound, text)
	case status == http.StatusUnauthorized || status == http.StatusForbidden || env.Code == dto.CodeUnauthorized:
		return domain.NewError(domain.ErrUnauthorized, text)
	case status == http.StatusConflict || env.Code == dto.CodeConflict || env.Code == dto.CodeDuplicated:
		return domain.NewError(domain.ErrConflict, text)
	default:
		return fmt.Errorf("%w: %s: HTTP %d %s %s", domain.ErrUpstreamUnavailable, c.name, status, env.Code, text)
	}
}

// messages acepta message como texto o como lista de textos.
func messages(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s != "" {
		return []string{s}
	}
	return nil
}

func messageText(raw json.RawMessage) string {
	return strings.Join(messages(raw), " ")
}
