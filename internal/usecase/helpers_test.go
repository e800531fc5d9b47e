package usecase

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/textproto"
	"sync"
	"testing"
	"time"

	"product-app/internal/data/entity"
	"product-app/internal/data/repository"
	"product-app/pkg/utils"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	pngBytes  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	jpegBytes = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
	gifBytes  = []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00")
)

type putCall struct {
	Key         string
	ContentType string
	Body        []byte
}

type fakeObjectStore struct {
	mu   sync.Mutex
	puts []putCall
	err  error
}

func (f *fakeObjectStore) PutObject(_ context.Context, key, contentType string, body []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts = append(f.puts, putCall{Key: key, ContentType: contentType, Body: body})
	return f.err
}

func (f *fakeObjectStore) PublicURL(key string) string {
	return "http://localhost:4566/product-bucket/" + key
}

func (f *fakeObjectStore) calls() []putCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]putCall(nil), f.puts...)
}

// recordingTokens remembers every auth token written.
type recordingTokens struct {
	repository.AuthTokenRepository
	created []*entity.AuthToken
}

func (r *recordingTokens) Create(ctx context.Context, token *entity.AuthToken) error {
	r.created = append(r.created, token)
	return r.AuthTokenRepository.Create(ctx, token)
}

// failingUsers fails every lookup.
type failingUsers struct {
	repository.UserRepository
}

func (failingUsers) FindByUsername(context.Context, string) (*entity.User, error) {
	return nil, errors.New("connection reset")
}

func testTokenManager() *utils.TokenManager {
	return utils.NewTokenManager(utils.JWTConfig{Secret: "test-secret", ExpiryHours: 24})
}

func newTestAuthService(repo *repository.Repository, now time.Time) *authService {
	svc := NewAuthService(repo, testTokenManager(), zap.NewNop()).(*authService)
	svc.now = func() time.Time { return now }
	return svc
}

func newTestProductService(repo *repository.Repository, objects *fakeObjectStore, maxBytes int64) *productService {
	return NewProductService(repo.Product, objects, utils.UploadConfig{MaxImageBytes: maxBytes}, zap.NewNop()).(*productService)
}

type formPart struct {
	field       string
	filename    string
	contentType string
	data        []byte
}

func filePart(filename, contentType string, data []byte) formPart {
	return formPart{field: "image", filename: filename, contentType: contentType, data: data}
}

func fieldPart(name, value string) formPart {
	return formPart{field: name, data: []byte(value)}
}

// multipartBody encodes parts and returns the body with its content type.
func multipartBody(t *testing.T, parts ...formPart) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for _, p := range parts {
		header := textproto.MIMEHeader{}
		if p.filename != "" {
			header.Set("Content-Disposition", `form-data; name="`+p.field+`"; filename="`+p.filename+`"`)
		} else {
			header.Set("Content-Disposition", `form-data; name="`+p.field+`"`)
		}
		if p.contentType != "" {
			header.Set("Content-Type", p.contentType)
		}
		pw, err := w.CreatePart(header)
		require.NoError(t, err)
		_, err = pw.Write(p.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	return body, w.FormDataContentType()
}

func requireAppError(t *testing.T, err error, kind ErrorKind, message string) {
	t.Helper()

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, kind, appErr.Kind, appErr.Error())
	require.Equal(t, message, appErr.Message)
}
