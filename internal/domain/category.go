package domain

import "strings"

type MerchantCategory string

const (
	CategoryFood    MerchantCategory = "food"
	CategoryRetail  MerchantCategory = "retail"
	CategoryService MerchantCategory = "service"
	CategoryUnknown MerchantCategory = "unknown"
)

func IsValidCategory(category MerchantCategory) bool {
	switch category {
	case CategoryFood, CategoryRetail, CategoryService, CategoryUnknown:
		return true
	default:
		return false
	}
}

// KeywordTable maps a category to the lowercase keywords that indicate it.
// It is the only configuration input to Classify.
type KeywordTable map[MerchantCategory][]string

// DefaultKeywordTable covers the product names common in the directory.
func DefaultKeywordTable() KeywordTable {
	return KeywordTable{
		CategoryFood: {
			"nasi", "ayam", "bakso", "mie", "sate", "soto", "kopi", "es ",
			"gorengan", "warung", "martabak", "seblak", "geprek", "jus",
			"roti", "kue", "catering", "snack", "keripik", "sambal",
		},
		CategoryRetail: {
			"toko", "baju", "sepatu", "pulsa", "sembako", "fashion",
			"aksesoris", "kerajinan", "batik", "souvenir", "grosir",
		},
		CategoryService: {
			"laundry", "jahit", "servis", "service", "cukur", "barber",
			"salon", "bengkel", "fotokopi", "percetakan", "sewa",
		},
	}
}

// Classify buckets a product or merchant name into a closed category set
// by case-insensitive substring match. Food wins over retail, retail over
// service, so the result is deterministic when keywords overlap.
func Classify(name string, table KeywordTable) MerchantCategory {
	lowered := strings.ToLower(name)
	for _, category := range []MerchantCategory{CategoryFood, CategoryRetail, CategoryService} {
		for _, keyword := range table[category] {
			if strings.Contains(lowered, keyword) {
				return category
			}
		}
	}
	return CategoryUnknown
}
