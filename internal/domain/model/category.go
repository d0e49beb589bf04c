package model

// دسته‌بندی بسته‌ی اقلام سبد
type ItemCategory string

const (
	//محصولات ارگانیک (خرما، شیره و ...)
	CategoryOrganic ItemCategory = "ORGANIC"

	//صنایع دستی
	CategoryHandicraft ItemCategory = "HANDICRAFT"

	//نهال میراث (گواهی نمادین کاشت نخل)
	CategoryHeritage ItemCategory = "HERITAGE"

	//خدمات (رشد فردی، پروژه و ...)
	CategoryService ItemCategory = "SERVICE"

	//محصولات دیجیتال
	CategoryDigital ItemCategory = "DIGITAL"
)

// کلاس تحویل هر دسته
type DeliveryClass string

const (
	DeliveryClassPhysical DeliveryClass = "PHYSICAL"
	DeliveryClassDigital  DeliveryClass = "DIGITAL"
)

// هر دسته دقیقا به یک کلاس تحویل تعلق دارد.
// دسته‌ی ناشناخته دیجیتال حساب می‌شود تا آدرس پستی بی‌دلیل اجباری نشود.
func (c ItemCategory) DeliveryClass() DeliveryClass {
	switch c {
	case CategoryOrganic, CategoryHandicraft:
		return DeliveryClassPhysical
	case CategoryHeritage, CategoryService, CategoryDigital:
		return DeliveryClassDigital
	default:
		return DeliveryClassDigital
	}
}

// نوع تحویل کل سفارش
type DeliveryType string

const (
	DeliveryTypePhysical DeliveryType = "PHYSICAL"
	DeliveryTypeDigital  DeliveryType = "DIGITAL"
	DeliveryTypeHybrid   DeliveryType = "HYBRID"
)
