package notify

import (
	"bytes"
	"html/template"
	"net/url"
	"time"

	"github.com/Domenick1991/airticket/internal/domain"
)

const (
	bookingConfirmationSubject = "XÁC NHẬN ĐẶT VÉ THÀNH CÔNG"
	paymentConfirmationSubject = "XÁC NHẬN THANH TOÁN THÀNH CÔNG"
)

var templateFuncs = template.FuncMap{
	"vnd":      formatVND,
	"time":     formatTime,
	"duration": formatDuration,
}

const layoutHTML = `{{define "layout"}}<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
.container { max-width: 600px; margin: 0 auto; padding: 20px; }
.header { background: #E31837; color: #fff; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
.content { padding: 20px; border: 1px solid #E31837; }
.box { padding: 15px; margin: 20px 0; border: 1px solid #E31837; border-radius: 5px; }
.booking-code { text-align: center; font-size: 24px; border-width: 2px; }
.footer { text-align: center; padding: 20px; font-size: 12px; color: #E31837; }
strong { color: #E31837; }
</style>
</head>
<body>
<div class="container">
{{template "body" .}}
<div class="footer">Email này được gửi tự động, vui lòng không trả lời.</div>
</div>
</body>
</html>{{end}}`

const legHTML = `{{define "leg"}}<div class="box">
<h4>{{.Title}}</h4>
<p><strong>Mã chuyến bay:</strong> {{.Leg.FlightCode}}</p>
<p><strong>Hãng bay:</strong> {{.Leg.Airline}}</p>
<p><strong>Điểm khởi hành:</strong> {{.Leg.Departure.AirportName}} ({{.Leg.Departure.AirportCode}})</p>
<p><strong>Thời gian khởi hành:</strong> {{time .Leg.Departure.Time}}</p>
<p><strong>Điểm đến:</strong> {{.Leg.Arrival.AirportName}} ({{.Leg.Arrival.AirportCode}})</p>
<p><strong>Thời gian đến:</strong> {{time .Leg.Arrival.Time}}</p>
{{with duration .Leg.Duration}}<p><strong>Thời gian bay:</strong> {{.}}</p>{{end}}
</div>{{end}}`

const bookingConfirmationHTML = `{{define "body"}}<div class="header"><h1>XÁC NHẬN ĐẶT VÉ</h1></div>
<div class="content">
<p>Xin chào <strong>{{.Name}}</strong>,</p>
<p>Cảm ơn Quý khách đã đặt vé. Đơn đặt vé của Quý khách đã được xác nhận thành công.</p>
<div class="box booking-code"><strong>MÃ ĐẶT VÉ:</strong><br>{{.BookingCode}}</div>
<h3>THÔNG TIN CHUYẾN BAY:</h3>
{{template "leg" .DepartureLeg}}
{{with .ReturnLeg}}{{template "leg" .}}{{end}}
<div class="box">
<h4>Thông tin hành khách:</h4>
<p><strong>Người lớn:</strong> {{.Passengers.Adults}} người</p>
{{if .Passengers.Children}}<p><strong>Trẻ em:</strong> {{.Passengers.Children}} người</p>{{end}}
{{if .Passengers.Infants}}<p><strong>Em bé:</strong> {{.Passengers.Infants}} người</p>{{end}}
</div>
<div class="box">
<h3>THÔNG TIN THANH TOÁN:</h3>
<p><strong>Số tiền:</strong> {{vnd .Amount}} VNĐ</p>
<p><strong>Tên ngân hàng:</strong> {{.Bank.Name}}</p>
<p><strong>Số tài khoản:</strong> {{.Bank.Account}}</p>
<p style="text-align: center"><img src="{{.QRURL}}" alt="QR Code Thanh Toán" style="max-width: 300px;"/></p>
</div>
{{with .LookupURL}}<p>Quý khách có thể tra cứu thông tin đặt vé tại đây: <a href="{{.}}">Tra cứu đặt vé</a></p>{{end}}
<p>Nếu Quý khách có bất kỳ câu hỏi nào, đừng ngần ngại liên hệ với chúng tôi.</p>
</div>{{end}}`

const paymentConfirmationHTML = `{{define "body"}}<div class="header"><h1>THANH TOÁN THÀNH CÔNG</h1></div>
<div class="content">
<p>Kính gửi <strong>{{.Name}}</strong>,</p>
<p>Chúng tôi xin thông báo rằng khoản thanh toán của Quý khách đã được xác nhận thành công.</p>
<div class="box">
<h3>CHI TIẾT THANH TOÁN:</h3>
<p><strong>Mã đặt vé:</strong> {{.BookingCode}}</p>
<p><strong>Số tiền đã thanh toán:</strong> {{vnd .Amount}} VNĐ</p>
<p><strong>Thời gian thanh toán:</strong> {{time .PaidAt}}</p>
<p><strong>Trạng thái:</strong> <span style="color: #28a745">Đã thanh toán</span></p>
</div>
{{with .LookupURL}}<p><a href="{{.}}">XEM CHI TIẾT ĐẶT VÉ</a></p>{{end}}
<p>Cảm ơn Quý khách đã sử dụng dịch vụ của chúng tôi!</p>
</div>{{end}}`

var (
	bookingConfirmationTmpl = mustPage(bookingConfirmationHTML)
	paymentConfirmationTmpl = mustPage(paymentConfirmationHTML)
)

func mustPage(body string) *template.Template {
	t := template.Must(template.New("page").Funcs(templateFuncs).Parse(layoutHTML))
	t = template.Must(t.Parse(legHTML))
	return template.Must(t.Parse(body))
}

type legView struct {
	Title string
	Leg   domain.FlightSnapshot
}

type bookingConfirmationView struct {
	domain.BookingConfirmation
	DepartureLeg legView
	ReturnLeg    *legView
	QRURL        string
	LookupURL    string
}

type paymentConfirmationView struct {
	domain.PaymentConfirmation
	PaidAt    time.Time
	LookupURL string
}

func renderBookingConfirmation(msg domain.BookingConfirmation, lookupURL string) (string, error) {
	view := bookingConfirmationView{
		BookingConfirmation: msg,
		DepartureLeg:        legView{Title: "Chuyến bay đi:", Leg: msg.Departure},
		QRURL:               PaymentQRURL(msg.Bank, msg.Amount, msg.BookingCode),
		LookupURL:           bookingLookupURL(lookupURL, msg.BookingCode),
	}
	if msg.Return != nil {
		view.ReturnLeg = &legView{Title: "Chuyến bay về:", Leg: *msg.Return}
	}
	return render(bookingConfirmationTmpl, view)
}

func renderPaymentConfirmation(msg domain.PaymentConfirmation, lookupURL string, paidAt time.Time) (string, error) {
	return render(paymentConfirmationTmpl, paymentConfirmationView{
		PaymentConfirmation: msg,
		PaidAt:              paidAt,
		LookupURL:           bookingLookupURL(lookupURL, msg.BookingCode),
	})
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func bookingLookupURL(base, code string) string {
	if base == "" {
		return ""
	}
	u, err := url.Parse(base)
	if err != nil {
		return ""
	}
	q := u.Query()
	q.Set("bookingCode", code)
	u.RawQuery = q.Encode()
	return u.String()
}
