// Package basehdl cung cấp handler CRUD generic và các helper parse/validate request.
// Các handler domain embed BaseHandler để dùng chung response envelope, parse body,
// filter và pagination.
package basehdl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	basesvc "khn_commerce/internal/api/base/service"
	"khn_commerce/internal/common"
	"khn_commerce/internal/global"
	"khn_commerce/internal/utility"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FilterOptions cấu hình bảo mật cho filter từ query string.
type FilterOptions struct {
	DeniedFields     []string // Các field không được phép filter (bảo mật)
	AllowedOperators []string // Các operator MongoDB được phép
	MaxFields        int      // Số field tối đa trong một filter
}

// DefaultFilterOptions trả về cấu hình filter mặc định.
func DefaultFilterOptions() FilterOptions {
	return FilterOptions{
		DeniedFields:     []string{"password", "token", "secret", "key", "hash"},
		AllowedOperators: []string{"$eq", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$exists"},
		MaxFields:        10,
	}
}

// BaseHandler là handler CRUD generic.
// T là model, CreateInput/UpdateInput là DTO cho create/update.
type BaseHandler[T any, CreateInput any, UpdateInput any] struct {
	Service       basesvc.BaseServiceMongo[T]
	filterOptions FilterOptions
}

// NewBaseHandler tạo BaseHandler mới với filter options mặc định.
func NewBaseHandler[T any, CreateInput any, UpdateInput any](service basesvc.BaseServiceMongo[T]) *BaseHandler[T, CreateInput, UpdateInput] {
	return &BaseHandler[T, CreateInput, UpdateInput]{
		Service:       service,
		filterOptions: DefaultFilterOptions(),
	}
}

// ParseRequestBody parse JSON body vào struct.
// Dùng json.Decoder với UseNumber để không mất precision với số lớn.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ParseRequestBody(c fiber.Ctx, out interface{}) error {
	body := c.Body()
	if len(body) == 0 {
		return common.NewError(common.ErrCodeValidationInput, "Body không được để trống", common.StatusBadRequest, nil)
	}
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(out); err != nil {
		return common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Body không đúng định dạng JSON. Chi tiết lỗi: %v", err),
			common.StatusBadRequest,
			err,
		)
	}
	return nil
}

// ValidateInput validate struct bằng validator chung.
// Trả về lỗi VAL_001 kèm danh sách field không hợp lệ.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ValidateInput(input interface{}) error {
	if global.Validate == nil {
		return nil
	}
	if err := global.Validate.Struct(input); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			fields := make([]string, 0, len(validationErrors))
			for _, fe := range validationErrors {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return common.NewError(
				common.ErrCodeValidationInput,
				fmt.Sprintf("Dữ liệu không hợp lệ: %s", strings.Join(fields, ", ")),
				common.StatusBadRequest,
				fields,
			)
		}
		return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err)
	}
	return nil
}

// ParsePagination parse page/limit từ query string (mặc định page=1, limit=10).
func (h *BaseHandler[T, CreateInput, UpdateInput]) ParsePagination(c fiber.Ctx) (int64, int64) {
	page := utility.P2Int64(c.Query("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit := utility.P2Int64(c.Query("limit", "10"))
	if limit <= 0 {
		limit = 10
	}

	return page, limit
}

// GetIDFromContext lấy ID từ URI params của request.
func (h *BaseHandler[T, CreateInput, UpdateInput]) GetIDFromContext(c fiber.Ctx) string {
	return c.Params("id")
}

// ParseObjectID parse chuỗi hex thành ObjectID, lỗi VAL_002 nếu sai định dạng.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ParseObjectID(id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("ID '%s' không đúng định dạng ObjectID", id),
			common.StatusBadRequest,
			err,
		)
	}
	return objID, nil
}

// RequireUserID lấy user id đã được middleware xác thực gắn vào context.
func (h *BaseHandler[T, CreateInput, UpdateInput]) RequireUserID(c fiber.Ctx) (primitive.ObjectID, error) {
	userID := c.Locals("user_id")
	if userID == nil {
		return primitive.NilObjectID, common.NewError(common.ErrCodeAuth, "User not authenticated", common.StatusUnauthorized, nil)
	}
	uid, ok := userID.(string)
	if !ok {
		return primitive.NilObjectID, common.NewError(common.ErrCodeAuth, "User not authenticated", common.StatusUnauthorized, nil)
	}
	return h.ParseObjectID(uid)
}

// IsAdminFromContext kiểm tra user trong context có role admin không.
func (h *BaseHandler[T, CreateInput, UpdateInput]) IsAdminFromContext(c fiber.Ctx) bool {
	role, ok := c.Locals("user_role").(string)
	return ok && role == "admin"
}

// ProcessFilter parse filter JSON từ query string, normalize ObjectID và validate bảo mật.
// Ví dụ: ?filter={"featured":true,"stock":{"$lt":10}}
func (h *BaseHandler[T, CreateInput, UpdateInput]) ProcessFilter(c fiber.Ctx) (map[string]interface{}, error) {
	filterStr := c.Query("filter", "{}")

	var filter map[string]interface{}
	decoder := json.NewDecoder(strings.NewReader(filterStr))
	decoder.UseNumber()
	if err := decoder.Decode(&filter); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Filter không đúng định dạng JSON. Chi tiết lỗi: %v. Giá trị filter nhận được: %s", err, filterStr),
			common.StatusBadRequest,
			err,
		)
	}

	filter = h.normalizeFilter(filter)

	if err := h.validateFilter(filter); err != nil {
		return nil, err
	}

	return filter, nil
}

// normalizeFilter chuyển các giá trị đặc biệt trong filter về kiểu MongoDB:
// - {"$oid": "..."} → primitive.ObjectID
// - field "_id" hoặc kết thúc bằng "Id" với hex 24 ký tự → primitive.ObjectID
// - json.Number → int64 hoặc float64
func (h *BaseHandler[T, CreateInput, UpdateInput]) normalizeFilter(filter map[string]interface{}) map[string]interface{} {
	normalized := make(map[string]interface{}, len(filter))
	for key, value := range filter {
		normalized[key] = h.normalizeFilterValue(key, value)
	}
	return normalized
}

func (h *BaseHandler[T, CreateInput, UpdateInput]) normalizeFilterValue(key string, value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		// {"$oid": "..."} → ObjectID
		if oidStr, ok := v["$oid"].(string); ok && len(v) == 1 {
			if objID, err := primitive.ObjectIDFromHex(oidStr); err == nil {
				return objID
			}
			return value
		}
		// Map lồng nhau (operators) → normalize từng giá trị
		nested := make(map[string]interface{}, len(v))
		for nk, nv := range v {
			nested[nk] = h.normalizeFilterValue(key, nv)
		}
		return nested
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case string:
		// Field _id hoặc *Id với giá trị hex 24 ký tự → ObjectID
		if key == "_id" || strings.HasSuffix(key, "Id") {
			if objID, err := primitive.ObjectIDFromHex(v); err == nil {
				return objID
			}
		}
		return v
	default:
		return value
	}
}

// validateFilter kiểm tra filter theo filterOptions: field bị cấm, operator không cho phép,
// số lượng field tối đa.
func (h *BaseHandler[T, CreateInput, UpdateInput]) validateFilter(filter map[string]interface{}) error {
	deniedFields := h.filterOptions.DeniedFields
	if len(deniedFields) == 0 {
		deniedFields = DefaultFilterOptions().DeniedFields
	}
	allowedOperators := h.filterOptions.AllowedOperators
	if len(allowedOperators) == 0 {
		allowedOperators = DefaultFilterOptions().AllowedOperators
	}
	maxFields := h.filterOptions.MaxFields
	if maxFields <= 0 {
		maxFields = DefaultFilterOptions().MaxFields
	}

	if len(filter) > maxFields {
		return common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Filter không được vượt quá %d fields để đảm bảo hiệu năng hệ thống", maxFields),
			common.StatusBadRequest,
			nil,
		)
	}

	for field, value := range filter {
		if utility.Contains(deniedFields, field) {
			return common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Trường '%s' không được phép sử dụng trong filter vì lý do bảo mật. Vui lòng sử dụng các trường khác.", field),
				common.StatusBadRequest,
				nil,
			)
		}

		if mapValue, ok := value.(map[string]interface{}); ok {
			for op := range mapValue {
				if strings.HasPrefix(op, "$") && !utility.Contains(allowedOperators, op) {
					return common.NewError(
						common.ErrCodeValidationFormat,
						fmt.Sprintf("Toán tử MongoDB '%s' không được phép sử dụng. Các toán tử được phép: %v", op, allowedOperators),
						common.StatusBadRequest,
						nil,
					)
				}
			}
		}
	}

	return nil
}

// TransformCreateInputToModel chuyển DTO create sang model qua JSON round-trip.
// DTO và model dùng chung tên field json nên các field trùng tên được copy tự động.
func (h *BaseHandler[T, CreateInput, UpdateInput]) TransformCreateInputToModel(input *CreateInput) (*T, error) {
	model := new(T)
	if _, err := utility.ConvertStruct(input, model); err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, "Không thể chuyển đổi dữ liệu đầu vào", common.StatusBadRequest, err)
	}
	return model, nil
}

// TransformUpdateInputToSet chuyển DTO update sang map $set, bỏ qua các field nil/rỗng.
func (h *BaseHandler[T, CreateInput, UpdateInput]) TransformUpdateInputToSet(input *UpdateInput) (map[string]interface{}, error) {
	jsonData, err := json.Marshal(input)
	if err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, "Không thể chuyển đổi dữ liệu đầu vào", common.StatusBadRequest, err)
	}
	set := make(map[string]interface{})
	decoder := json.NewDecoder(bytes.NewReader(jsonData))
	decoder.UseNumber()
	if err := decoder.Decode(&set); err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, "Không thể chuyển đổi dữ liệu đầu vào", common.StatusBadRequest, err)
	}
	// DTO update dùng omitempty nên field không gửi sẽ không xuất hiện trong map
	for k, v := range set {
		if n, ok := v.(json.Number); ok {
			if i, err := n.Int64(); err == nil {
				set[k] = i
			} else if f, err := n.Float64(); err == nil {
				set[k] = f
			}
		}
	}
	return set, nil
}

// BuildBsonFilter chuyển map filter sang bson.M.
func (h *BaseHandler[T, CreateInput, UpdateInput]) BuildBsonFilter(filter map[string]interface{}) bson.M {
	result := bson.M{}
	for k, v := range filter {
		result[k] = v
	}
	return result
}
