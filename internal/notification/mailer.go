// Package notification gửi email giao dịch cho khách hàng qua SMTP.
// Không cấu hình SMTP thì mailer tắt, mọi lời gọi gửi là no-op.
package notification

import (
	"fmt"

	"khn_commerce/config"
	ordermodels "khn_commerce/internal/api/order/models"
	"khn_commerce/internal/logger"

	"gopkg.in/gomail.v2"
)

// Mailer gửi email qua SMTP bằng gomail.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	enabled  bool
}

// NewMailer tạo Mailer từ cấu hình. SMTPHost rỗng thì mailer bị tắt.
func NewMailer(cfg *config.Configuration) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
		enabled:  cfg.SMTPHost != "",
	}
}

// Enabled cho biết mailer có được cấu hình để gửi thật không.
func (m *Mailer) Enabled() bool {
	return m.enabled
}

// SendOrderConfirmation gửi email xác nhận đơn hàng.
// Gửi thất bại chỉ ghi log, không ảnh hưởng đến kết quả đặt hàng.
func (m *Mailer) SendOrderConfirmation(to string, order *ordermodels.Order) error {
	if !m.enabled {
		return nil
	}

	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(
			`<tr><td style="padding:5px 10px;">%s</td><td style="padding:5px 10px;text-align:center;">%d</td><td style="padding:5px 10px;text-align:right;">%.2f</td></tr>`,
			item.Name, item.Quantity, item.Price,
		)
	}

	htmlContent := fmt.Sprintf(`
		<h2>Cảm ơn bạn đã đặt hàng!</h2>
		<p>Mã đơn hàng: <strong>%s</strong></p>
		<table style="border-collapse:collapse;width:100%%;">
			<tr><th style="text-align:left;padding:5px 10px;">Sản phẩm</th><th style="padding:5px 10px;">SL</th><th style="text-align:right;padding:5px 10px;">Đơn giá</th></tr>
			%s
		</table>
		<p>Tạm tính: %.2f</p>
		<p>Phí vận chuyển: %.2f</p>
		<p><strong>Tổng cộng: %.2f</strong></p>
	`, order.OrderNumber, itemsHTML, order.Subtotal, order.ShippingFee, order.Total)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Xác nhận đơn hàng %s", order.OrderNumber))
	msg.SetBody("text/html", htmlContent)

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	if err := dialer.DialAndSend(msg); err != nil {
		logger.GetErrorLogger().WithError(err).WithField("orderNumber", order.OrderNumber).Error("Gửi email xác nhận đơn hàng thất bại")
		return err
	}
	return nil
}
