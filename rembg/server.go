package rembg

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/nfnt/resize"
	"github.com/segmentio/ksuid"

	nhttp "github.com/chaos-io/removebg/util/http"
)

const (
	DefaultBaseURL = "http://127.0.0.1:7000/"
	DefaultModel   = "u2net"
	removePath     = "api/remove"
)

// ServerRemBG 调用 rembg HTTP 服务 (rembg s) 去除背景
type ServerRemBG struct {
	baseURL string
	model   string
	cli     nhttp.IClient
}

type Option func(*ServerRemBG)

func WithModel(model string) Option {
	return func(s *ServerRemBG) {
		s.model = model
	}
}

func WithClient(cli nhttp.IClient) Option {
	return func(s *ServerRemBG) {
		s.cli = cli
	}
}

func NewServerRemBG(baseURL string, opts ...Option) *ServerRemBG {
	// 首次请求要加载模型，耗时不可预估，默认 client 不设超时
	s := &ServerRemBG{
		baseURL: baseURL,
		model:   DefaultModel,
		cli:     nhttp.NewHTTPClientWithTimeout(0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

/*
	curl -X POST "$BASE_URL/api/remove" \
	  -F "file=@img_4026.jpg" \
	  -F "model=u2net" \
	  -o out.png
*/
func (s *ServerRemBG) Remove(ctx context.Context, img image.Image) (image.Image, error) {
	body, contentType, err := s.buildForm(img)
	if err != nil {
		return nil, err
	}

	var data []byte
	reqParam := &nhttp.RequestParam{
		RequestURI: s.removeURL(),
		Method:     http.MethodPost,
		Header:     map[string]string{"Content-Type": contentType},
		Body:       body,
		Response:   &data,
	}
	if err := s.cli.DoHTTPRequest(ctx, reqParam); err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}

	out, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode response image: %w", err)
	}

	// 服务端可能按模型尺寸输出，缩放回原图大小
	want, got := img.Bounds(), out.Bounds()
	if want.Dx() != got.Dx() || want.Dy() != got.Dy() {
		slog.Debug("resize removed image", "from", got.Size(), "to", want.Size())
		out = resize.Resize(uint(want.Dx()), uint(want.Dy()), out, resize.Lanczos3)
	}

	return toNRGBA(out), nil
}

// buildForm 把图片编码为 PNG 放进 multipart 表单
func (s *ServerRemBG) buildForm(img image.Image) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", ksuid.New().String()+".png")
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if err := png.Encode(part, img); err != nil {
		return nil, "", fmt.Errorf("encode form file: %w", err)
	}

	if s.model != "" {
		_ = writer.WriteField("model", s.model)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close form: %w", err)
	}

	return body, writer.FormDataContentType(), nil
}

func (s *ServerRemBG) removeURL() string {
	return strings.TrimSuffix(s.baseURL, "/") + "/" + removePath
}
