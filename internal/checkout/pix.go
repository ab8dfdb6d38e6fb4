package checkout

// PixBinding is the fixed payment payload pre-generated for one product:
// its QR image, the copy-and-paste code and the total with shipping
// already included.
type PixBinding struct {
	QRCode string  `json:"qr_code"`
	Code   string  `json:"code"`
	Total  float64 `json:"total"`
}

// pixByProductID maps catalog ids to their static PIX payloads. The flow
// always resolves the binding of the first cart line, so PIX totals are
// only meaningful for single-product carts.
var pixByProductID = map[int64]PixBinding{
	1: { // HORI Nintendo Switch
		QRCode: "/assets/pix-hori.png",
		Code:   "00020126330014br.gov.bcb.pix0111092820129565204000053039865406389.395802BR5919Emanuel De Oliveira6014RIO DE JANEIRO62070503***6304AB48",
		Total:  389.39,
	},
	2: { // R36S
		QRCode: "/assets/pix-r36s.png",
		Code:   "00020126330014br.gov.bcb.pix0111092820129565204000053039865406294.395802BR5919Emanuel De Oliveira6014RIO DE JANEIRO62070503***6304AD8F",
		Total:  294.39,
	},
	3: { // Nintendo Switch OLED
		QRCode: "/assets/pix-switch.png",
		Code:   "00020126330014br.gov.bcb.pix01110928201295652040000530398654072466.395802BR5919Emanuel De Oliveira6014RIO DE JANEIRO62070503***6304E2E3",
		Total:  2466.39,
	},
	4: { // GameStick
		QRCode: "/assets/pix-gamestick.png",
		Code:   "00020126330014br.gov.bcb.pix0111092820129565204000053039865406163.305802BR5919Emanuel De Oliveira6014RIO DE JANEIRO62070503***630448CE",
		Total:  163.30,
	},
	5: { // GameStick Lite
		QRCode: "/assets/pix-gamesticklite.png",
		Code:   "00020126330014br.gov.bcb.pix0111092820129565204000053039865406117.395802BR5919Emanuel De Oliveira6014RIO DE JANEIRO62070503***63048577",
		Total:  117.39,
	},
	6: { // Xbox Series S
		QRCode: "/assets/pix-xbox.png",
		Code:   "00020126330014br.gov.bcb.pix01110928201295652040000530398654072494.395802BR5919Emanuel De Oliveira6014RIO DE JANEIRO62070503***6304AA65",
		Total:  2494.39,
	},
	7: { // PS2 Game Stick M88, product 210.90 + fixed shipping 19.40
		QRCode: "/assets/pix-m88.png",
		Code:   "00020126330014br.gov.bcb.pix0111092820129565204000053039865406230.305802BR5919Emanuel De Oliveira6014RIO DE JANEIRO62070503***63049D1E",
		Total:  230.30,
	},
}

// PixBindingFor returns the payload bound to a catalog id.
func PixBindingFor(productID int64) (PixBinding, bool) {
	b, ok := pixByProductID[productID]
	return b, ok
}
