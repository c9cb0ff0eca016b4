// Package filehttp реализует HTTP-интерфейс хранилища файлов поверх локального диска.
// Любой путь вне служебного префикса /- считается путём файла относительно корня:
//   - PUT /{path} и POST /{path} — сохраняют тело запроса (временный файл + rename), 201.
//   - GET /{path} — отдаёт файл целиком с заголовками, запрещающими кеширование.
//   - GET /-/stat/{path} — запись журнала о последнем сохранении пути.
//   - POST /-/gc — удаляет брошенные временные файлы загрузок.
//   - GET /-/health — суммарный объём файлов в корне для health-check'ов.
//
// Прочие методы на путях файлов получают 405 с заголовком Allow.
package filehttp
