package libs

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryService() (*CloudinaryService, error) {
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		if cldURL := os.Getenv("CLOUDINARY_URL"); cldURL != "" {
			cld, err := cloudinary.NewFromURL(cldURL)
			if err != nil {
				return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
			}
			return &CloudinaryService{cld: cld}, nil
		}
		return nil, errors.New("cloudinary credentials not configured")
	}

	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &CloudinaryService{cld: cld}, nil
}

func (s *CloudinaryService) ValidateImageFile(file *multipart.FileHeader) error {
	if file.Size > 10*1024*1024 {
		return errors.New("file too large (max 10MB)")
	}

	allowedExts := map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".gif":  true,
		".webp": true,
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExts[ext] {
		return errors.New("invalid file type. Only jpg, jpeg, png, gif, webp allowed")
	}

	return nil
}

func (s *CloudinaryService) UploadImage(ctx context.Context, file multipart.File, filename, folder string) (string, string, error) {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	publicID := fmt.Sprintf("%s_%s", uuid.NewString()[:8], strings.ReplaceAll(base, " ", "_"))

	uploadResult, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       publicID,
		Folder:         folder,
		ResourceType:   "image",
		Transformation: "q_auto,f_auto",
	})

	if err != nil {
		return "", "", fmt.Errorf("failed to upload to cloudinary: %w", err)
	}

	return uploadResult.SecureURL, uploadResult.PublicID, nil
}

// PublicIDFromURL recovers the public ID (folder included) from a
// cloudinary delivery URL. Anything that does not look like a delivery URL
// is returned unchanged.
func PublicIDFromURL(rawURL string) string {
	if !strings.Contains(rawURL, "/upload/") {
		return rawURL
	}

	path := strings.SplitN(rawURL, "/upload/", 2)[1]
	segments := strings.Split(path, "/")
	if len(segments) > 1 && strings.HasPrefix(segments[0], "v") {
		if _, err := strconv.Atoi(segments[0][1:]); err == nil {
			segments = segments[1:]
		}
	}

	id := strings.Join(segments, "/")
	return strings.TrimSuffix(id, filepath.Ext(id))
}

// DeleteImage accepts either a public ID or a delivery URL.
func (s *CloudinaryService) DeleteImage(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	publicID = PublicIDFromURL(publicID)

	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
	})

	if err != nil {
		return fmt.Errorf("failed to delete from cloudinary: %w", err)
	}

	return nil
}

func (s *CloudinaryService) UploadMultipleImages(ctx context.Context, files []*multipart.FileHeader, folder string) ([]string, error) {
	urls := []string{}
	publicIDs := []string{}

	for _, fileHeader := range files {
		if err := s.ValidateImageFile(fileHeader); err != nil {
			return nil, err
		}

		file, err := fileHeader.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}

		url, publicID, err := s.UploadImage(ctx, file, fileHeader.Filename, folder)
		file.Close()
		if err != nil {
			for _, id := range publicIDs {
				s.DeleteImage(ctx, id)
			}
			return nil, err
		}

		urls = append(urls, url)
		publicIDs = append(publicIDs, publicID)
	}

	return urls, nil
}
