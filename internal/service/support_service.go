package service

import (
	"strings"
	"unicode"
)

// DefaultSupportPhone is the field support line.
const DefaultSupportPhone = "+351 926 087 495"

// SupportContact is what the support screen shows.
type SupportContact struct {
	Phone   string `json:"phone"`
	TelLink string `json:"tel_link"`
}

type SupportService struct {
	phone string
}

func NewSupportService(phone string) *SupportService {
	if strings.TrimSpace(phone) == "" {
		phone = DefaultSupportPhone
	}
	return &SupportService{phone: strings.TrimSpace(phone)}
}

// Contact returns the phone and a dialable tel: link without whitespace.
func (s *SupportService) Contact() SupportContact {
	dial := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s.phone)
	return SupportContact{Phone: s.phone, TelLink: "tel:" + dial}
}
