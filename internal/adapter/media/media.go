// Package media uploads user content to Cloudinary and hands back the
// hosted URL. Only profile avatars go through it for now.
package media

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.AvatarUploader = (*AvatarStore)(nil)

type AvatarStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewAvatarStore(cloudinaryURL, folder string) (AvatarStore, error) {
	const op = "NewAvatarStore"

	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return AvatarStore{}, fmt.Errorf("%s: %w", op, err)
	}
	return AvatarStore{cld: cld, folder: folder}, nil
}

// Upload stores the avatar under a per-user public id, so a re-upload
// replaces the previous image instead of piling up assets.
func (s AvatarStore) Upload(
	ctx context.Context, userID string, src io.Reader,
) (string, error) {
	const op = "AvatarStore.Upload"

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	res, err := s.cld.Upload.Upload(ctx, src, uploader.UploadParams{
		PublicID:  "avatar-" + userID,
		Folder:    s.folder,
		Overwrite: api.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return res.SecureURL, nil
}
