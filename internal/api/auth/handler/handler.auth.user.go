package handler

import (
	"strconv"
	"time"

	"khn_commerce/internal/api/auth/dto"
	"khn_commerce/internal/api/auth/models"
	"khn_commerce/internal/api/auth/service"
	basehdl "khn_commerce/internal/api/base/handler"
	"khn_commerce/internal/common"
	"khn_commerce/internal/global"
	"khn_commerce/internal/logger"
	"khn_commerce/internal/utility"

	"github.com/gofiber/fiber/v3"
)

// UserHandler xử lý các request liên quan đến tài khoản người dùng.
type UserHandler struct {
	*basehdl.BaseHandler[models.User, dto.RegisterInput, dto.UpdateProfileInput]
	UserService *service.UserService
}

// NewUserHandler tạo mới UserHandler.
func NewUserHandler() (*UserHandler, error) {
	userService, err := service.NewUserService()
	if err != nil {
		return nil, err
	}
	return &UserHandler{
		BaseHandler: basehdl.NewBaseHandler[models.User, dto.RegisterInput, dto.UpdateProfileInput](userService),
		UserService: userService,
	}, nil
}

// issueToken tạo JWT cho user với TTL từ cấu hình.
func issueToken(userID string) (string, error) {
	cfg := global.MongoDB_ServerConfig
	ttl := time.Duration(cfg.JwtTTLHours) * time.Hour
	return utility.CreateToken(cfg.JwtSecret, userID, ttl)
}

// HandleRegister xử lý đăng ký tài khoản mới.
// Response: {token, user}.
func (h *UserHandler) HandleRegister(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		input := new(dto.RegisterInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		ctx, cancel := basehdl.RequestContext()
		defer cancel()

		user, err := h.UserService.Register(ctx, input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		token, err := issueToken(user.ID.Hex())
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		logger.LogAuth("register", c, map[string]interface{}{"email": user.Email, "success": true})
		h.HandleResponse(c, fiber.Map{"token": token, "user": user}, nil)
		return nil
	})
}

// HandleLogin xử lý đăng nhập.
// Response: {token, user}.
func (h *UserHandler) HandleLogin(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		input := new(dto.LoginInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		ctx, cancel := basehdl.RequestContext()
		defer cancel()

		user, err := h.UserService.Login(ctx, input.Email, input.Password)
		if err != nil {
			logger.LogAuth("login", c, map[string]interface{}{"email": input.Email, "success": false})
			h.HandleResponse(c, nil, err)
			return nil
		}

		token, err := issueToken(user.ID.Hex())
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		logger.LogAuth("login", c, map[string]interface{}{"email": user.Email, "success": true})
		h.HandleResponse(c, fiber.Map{"token": token, "user": user}, nil)
		return nil
	})
}

// HandleMe trả về thông tin user hiện tại (đã được middleware xác thực).
func (h *UserHandler) HandleMe(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		user, ok := c.Locals("user").(*models.User)
		if !ok || user == nil {
			h.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}
		h.HandleResponse(c, user, nil)
		return nil
	})
}

// HandleUpdateProfile cập nhật tên/số điện thoại của user hiện tại.
func (h *UserHandler) HandleUpdateProfile(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.RequireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		input := new(dto.UpdateProfileInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		ctx, cancel := basehdl.RequestContext()
		defer cancel()

		user, err := h.UserService.UpdateProfile(ctx, userID, input)
		h.HandleResponse(c, user, err)
		return nil
	})
}

// HandleAddAddress thêm địa chỉ giao hàng cho user hiện tại.
func (h *UserHandler) HandleAddAddress(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.RequireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		input := new(dto.AddressInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		ctx, cancel := basehdl.RequestContext()
		defer cancel()

		user, err := h.UserService.AddAddress(ctx, userID, addressFromInput(input))
		h.HandleResponse(c, user, err)
		return nil
	})
}

// HandleUpdateAddress cập nhật địa chỉ tại vị trí index trong URI.
func (h *UserHandler) HandleUpdateAddress(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.RequireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		index, err := parseAddressIndex(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		input := new(dto.AddressInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		ctx, cancel := basehdl.RequestContext()
		defer cancel()

		user, err := h.UserService.UpdateAddress(ctx, userID, index, addressFromInput(input))
		h.HandleResponse(c, user, err)
		return nil
	})
}

// HandleDeleteAddress xóa địa chỉ tại vị trí index trong URI.
func (h *UserHandler) HandleDeleteAddress(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.RequireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		index, err := parseAddressIndex(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		ctx, cancel := basehdl.RequestContext()
		defer cancel()

		user, err := h.UserService.DeleteAddress(ctx, userID, index)
		h.HandleResponse(c, user, err)
		return nil
	})
}

// parseAddressIndex parse index địa chỉ từ URI params.
func parseAddressIndex(c fiber.Ctx) (int, error) {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return 0, common.NewError(common.ErrCodeValidationFormat, "Index địa chỉ không hợp lệ", common.StatusBadRequest, err)
	}
	return index, nil
}

// addressFromInput chuyển AddressInput sang model Address.
func addressFromInput(input *dto.AddressInput) models.Address {
	return models.Address{
		Name:       input.Name,
		Phone:      input.Phone,
		Address:    input.Address,
		District:   input.District,
		Province:   input.Province,
		PostalCode: input.PostalCode,
		IsDefault:  input.IsDefault,
	}
}
