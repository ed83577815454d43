package cloudinary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

type CloudinaryConfig struct {
	CloudName    string
	UploadPreset string
	SlipFolder   string
}

type CloudinaryRepository struct {
	cloudinaryConfig CloudinaryConfig
	client           *http.Client
}

func NewCloudinaryRepository(cfg CloudinaryConfig) *CloudinaryRepository {
	return &CloudinaryRepository{
		cloudinaryConfig: cfg,
		client:           &http.Client{Timeout: 30 * time.Second},
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// UploadSlip sends the payment slip as an unsigned multipart upload and
// returns the hosted URL.
func (r *CloudinaryRepository) UploadSlip(ctx context.Context, filename string, file io.Reader) (string, error) {
	url := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", r.cloudinaryConfig.CloudName)

	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		defer pw.Close()

		if err := writer.WriteField("upload_preset", r.cloudinaryConfig.UploadPreset); err != nil {
			pw.CloseWithError(err)
			return
		}
		if err := writer.WriteField("folder", r.cloudinaryConfig.SlipFolder); err != nil {
			pw.CloseWithError(err)
			return
		}
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(writer.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, pr)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	res, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	var uploaded uploadResponse
	if err := json.Unmarshal(body, &uploaded); err != nil {
		return "", fmt.Errorf("failed to decode cloudinary response: %w", err)
	}

	if res.StatusCode != http.StatusOK || uploaded.SecureURL == "" {
		msg := uploaded.Error.Message
		if msg == "" {
			msg = res.Status
		}
		return "", fmt.Errorf("cloudinary upload failed: %s", msg)
	}

	return uploaded.SecureURL, nil
}
