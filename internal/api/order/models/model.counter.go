package models

// Counter là bộ đếm số thứ tự đơn hàng theo kỳ (năm + tháng).
// _id là prefix của kỳ (ví dụ "KHN202608"), seq tăng atomic bằng $inc.
type Counter struct {
	ID  string `json:"id" bson:"_id"`
	Seq int64  `json:"seq" bson:"seq"`
}
