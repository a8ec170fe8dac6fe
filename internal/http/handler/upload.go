package handler

import (
	"io"
	"mime/multipart"
	"net/url"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"

	"propertyapi/internal/service"
)

// UploadFormField is the multipart field carrying image files.
const UploadFormField = "images"

// requestBaseURL rebuilds the scheme and host the client used, honoring
// X-Forwarded-Proto through Fiber's proxy handling.
func requestBaseURL(c *fiber.Ctx) string {
	return c.Protocol() + "://" + c.Hostname()
}

// partContentType trusts the part header unless it is missing or generic, in
// which case the first bytes are sniffed and f is rewound.
func partContentType(fh *multipart.FileHeader, f multipart.File) (string, error) {
	ct := strings.TrimSpace(fh.Header.Get(fiber.HeaderContentType))
	if ct != "" && ct != fiber.MIMEOctetStream {
		return ct, nil
	}
	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return "", err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return mt.String(), nil
}

// UploadImages godoc
// @Summary Upload listing images
// @Description Accepts up to five jpeg, png, gif or webp files of at most 5 MiB each.
// @Description "attached" is the number of images the listing already has.
// @Tags images
// @Accept mpfd
// @Produce json
// @Security AccessToken
// @Param images formData file true "Image files"
// @Param attached formData int false "Images already on the listing"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errorPayload
// @Failure 413 {object} errorPayload
// @Router /upload [post]
func UploadImages(images service.ImageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILES_REQUIRED", "no images sent")
		}

		attached := 0
		if v := form.Value["attached"]; len(v) > 0 && strings.TrimSpace(v[0]) != "" {
			attached, err = strconv.Atoi(strings.TrimSpace(v[0]))
			if err != nil || attached < 0 {
				return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "attached must be a non-negative integer")
			}
		}

		headers := form.File[UploadFormField]
		if err := images.CheckBatch(len(headers), attached); err != nil {
			return writeServiceError(c, err)
		}

		uploads := make([]service.Upload, 0, len(headers))
		for _, fh := range headers {
			f, err := fh.Open()
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
			}
			defer f.Close()

			ct, err := partContentType(fh, f)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot read uploaded file")
			}
			uploads = append(uploads, service.Upload{
				Filename:    fh.Filename,
				ContentType: ct,
				Size:        fh.Size,
				Reader:      f,
			})
		}

		res, err := images.StoreMany(c.UserContext(), uploads, attached, requestBaseURL(c))
		if err != nil {
			return writeServiceError(c, err)
		}

		body := fiber.Map{
			"message": "upload completed",
			"images":  res.URLs,
			"count":   len(res.URLs),
		}
		if len(res.Rejected) > 0 {
			body["rejected"] = res.Rejected
		}
		return c.JSON(body)
	}
}

// DeleteImage godoc
// @Summary Delete an uploaded image
// @Description Listings still referencing the file are not updated.
// @Tags images
// @Produce json
// @Security AccessToken
// @Param filename path string true "Stored filename"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errorPayload
// @Router /upload/{filename} [delete]
func DeleteImage(images service.ImageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name, err := url.PathUnescape(c.Params("filename"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FILENAME", "invalid image filename")
		}
		if err := images.Delete(c.UserContext(), name); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "image deleted"})
	}
}

// ServeImage streams a stored image.
func ServeImage(images service.ImageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name, err := url.PathUnescape(c.Params("filename"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FILENAME", "invalid image filename")
		}
		rc, info, err := images.Open(c.UserContext(), name)
		if err != nil {
			return writeServiceError(c, err)
		}
		if info.ContentType != "" {
			c.Set(fiber.HeaderContentType, info.ContentType)
		}
		c.Set(fiber.HeaderCacheControl, "public, max-age=86400")
		size := -1
		if info.Size > 0 {
			size = int(info.Size)
		}
		return c.SendStream(rc, size)
	}
}
