package handler

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"

	basehdl "khn_commerce/internal/api/base/handler"
	"khn_commerce/internal/common"
	"khn_commerce/internal/global"
	"khn_commerce/internal/logger"
	"khn_commerce/internal/utility"

	"github.com/gofiber/fiber/v3"
)

// allowedExtensions là các đuôi file ảnh được phép upload.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// UploadHandler xử lý upload file ảnh (ảnh sản phẩm, chứng từ thanh toán).
type UploadHandler struct {
	uploadDir     string
	publicBaseURL string
}

// NewUploadHandler tạo mới UploadHandler từ cấu hình.
func NewUploadHandler() (*UploadHandler, error) {
	cfg := global.MongoDB_ServerConfig
	return &UploadHandler{
		uploadDir:     cfg.UploadDir,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
	}, nil
}

// BuildFileName sinh tên file lưu trữ: <unixMilli>-<random><ext>.
func BuildFileName(unixMilli int64, random int64, ext string) string {
	return fmt.Sprintf("%d-%d%s", unixMilli, random, strings.ToLower(ext))
}

// HandleUpload nhận một file ảnh multipart (field "image"), lưu vào thư mục
// upload với tên duy nhất và trả về URL public.
func (h *UploadHandler) HandleUpload(c fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil || file == nil {
		basehdl.JSONResponse(c, common.StatusBadRequest, fiber.Map{
			"code":    common.ErrCodeValidationInput.Code,
			"message": "Không có file nào được upload",
			"status":  "error",
		})
		return nil
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		basehdl.JSONResponse(c, common.StatusBadRequest, fiber.Map{
			"code":    common.ErrCodeValidationFormat.Code,
			"message": fmt.Sprintf("Định dạng file '%s' không được hỗ trợ", ext),
			"status":  "error",
		})
		return nil
	}

	fileName := BuildFileName(utility.CurrentTimeInMilli(), rand.Int63n(1_000_000_000), ext)
	destination := filepath.Join(h.uploadDir, fileName)

	if err := c.SaveFile(file, destination); err != nil {
		logger.GetErrorLogger().WithError(err).Error("Lưu file upload thất bại")
		basehdl.JSONResponse(c, common.StatusInternalServerError, fiber.Map{
			"code":    common.ErrCodeInternalServer.Code,
			"message": "Không thể lưu file",
			"status":  "error",
		})
		return nil
	}

	url := fmt.Sprintf("%s/uploads/%s", h.publicBaseURL, fileName)
	basehdl.JSONResponse(c, common.StatusOK, fiber.Map{
		"code":    common.StatusOK,
		"message": common.MsgSuccess,
		"data":    fiber.Map{"url": url},
		"status":  "success",
	})
	return nil
}
