package upload

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"

	"github.com/prabhatlnct2008/mywabiz/internal/domain"
)

// ErrNotConfigured is returned when no Cloudinary credentials were supplied.
var ErrNotConfigured = errors.New("upload: cloudinary is not configured")

// Kinds of images a store can upload. The kind picks the Cloudinary folder.
const (
	KindLogo    = "logo"
	KindBanner  = "banner"
	KindProduct = "product"
)

// Service stores images in Cloudinary and hands back their public URLs.
type Service struct {
	cld *cloudinary.Cloudinary
}

// New builds the service from a CLOUDINARY_URL-style credential string. An
// empty string yields a service whose Image method fails with
// ErrNotConfigured, so the rest of the API keeps working without an account.
func New(cloudinaryURL string) (*Service, error) {
	if cloudinaryURL == "" {
		return &Service{}, nil
	}
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}
	return &Service{cld: cld}, nil
}

// Configured reports whether uploads will actually reach Cloudinary.
func (s *Service) Configured() bool {
	return s.cld != nil
}

// Image uploads one image for a store and returns its HTTPS URL.
func (s *Service) Image(ctx context.Context, storeID, kind string, r io.Reader) (string, error) {
	if s.cld == nil {
		return "", ErrNotConfigured
	}
	folder := "mywabiz/stores/" + storeID
	switch kind {
	case KindLogo, KindBanner:
		folder += "/branding"
	case KindProduct:
		folder += "/products"
	default:
		return "", domain.Invalidf("upload: unknown image kind %q", kind)
	}

	res, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:   folder,
		PublicID: kind + "_" + uuid.NewString(),
		Tags:     []string{kind, storeID},
	})
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	return res.SecureURL, nil
}

// Delete removes an uploaded image by its Cloudinary public ID.
func (s *Service) Delete(ctx context.Context, publicID string) error {
	if s.cld == nil {
		return ErrNotConfigured
	}
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("upload: %w", err)
	}
	return nil
}
