package supabase

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// BlobStore implementation — Supabase Storage bucket uploads
// ============================================================

// UploadAvatar uploads an avatar image to the avatars bucket and
// returns its public URL. Filenames are timestamped so a re-upload
// never overwrites the previous avatar.
func (c *Client) UploadAvatar(ctx context.Context, userID, filename, contentType string, data []byte) (string, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UploadAvatar")
	defer span.End()
	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.Int("size_bytes", len(data)),
	)

	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".png"
	}
	objectPath := fmt.Sprintf("avatars/%s/%d%s", userID, time.Now().UnixMilli(), strings.ToLower(ext))

	url := fmt.Sprintf("%s/storage/v1/object/%s", c.baseURL, objectPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", err
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.serviceRoleKey))
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("supabase: storage upload failed",
			zap.String("object", objectPath),
			zap.Error(err),
		)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := readBody(resp)
		c.logger.Warn("supabase: storage upload non-2xx",
			zap.String("object", objectPath),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return "", fmt.Errorf("supabase storage upload returned %d: %s", resp.StatusCode, string(body))
	}

	publicURL := fmt.Sprintf("%s/storage/v1/object/public/%s", c.baseURL, objectPath)
	c.logger.Debug("supabase: avatar uploaded",
		zap.String("object", objectPath),
		zap.String("url", publicURL),
	)
	return publicURL, nil
}
