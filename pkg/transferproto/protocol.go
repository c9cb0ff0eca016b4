// Package transferproto описывает HTTP-протокол PUT/GET-хранилища файлов.
package transferproto

// Служебные заголовки ответа на сохранение.
const (
	HeaderChecksum = "X-Checksum-Sha256"
	HeaderSize     = "X-Size"
)

// Заголовки, запрещающие кеширование выдаваемого файла.
const (
	ExpiresValue      = "0"
	CacheControlValue = "must-revalidate, post-check=0, pre-check=0"
	PragmaValue       = "public"
)

// Служебные маршруты живут под префиксом AdminPrefix; остальные пути — пути файлов.
const (
	AdminPrefix = "/-"
	HealthPath  = AdminPrefix + "/health"
	GCPath      = AdminPrefix + "/gc"
	StatPrefix  = AdminPrefix + "/stat"
)

// AllowedMethods — значение заголовка Allow для неподдерживаемых методов.
const AllowedMethods = "GET, PUT, POST"
