package constant

type contextKey string

const (
	AdminIDKey  contextKey = "admin_id"
	ClientIPKey contextKey = "client_ip"
)

type ProductStatus string

const (
	ProductStatusActive      ProductStatus = "active"
	ProductStatusInactive    ProductStatus = "inactive"
	ProductStatusUnavailable ProductStatus = "unavailable"
)

func (s ProductStatus) Valid() bool {
	return s == ProductStatusActive || s == ProductStatusInactive || s == ProductStatusUnavailable
}

type Language string

const (
	LanguageSK Language = "SK"
	LanguageCZ Language = "CZ"
	LanguageEN Language = "EN"
)

func (l Language) Valid() bool {
	return l == LanguageSK || l == LanguageCZ || l == LanguageEN
}

type CustomerType string

const (
	CustomerTypeRegular CustomerType = "regular"
	CustomerTypeMember  CustomerType = "yogapit_member"
)

func (t CustomerType) Valid() bool {
	return t == CustomerTypeRegular || t == CustomerTypeMember
}
