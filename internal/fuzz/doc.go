// Package fuzztests houses Go fuzz harnesses that exercise the
// explanation resolver and the search URL builder with arbitrary
// languages and messages. Its goal is to smoke test robustness and
// guard the core guarantees: resolution never panics, the fallback
// echoes the message verbatim, search URLs stay well-formed.
//
// Назначение: прогонять произвольные пары (язык, сообщение) через
// таблицу правил и кодирование поискового запроса.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/explain.

package fuzztests
