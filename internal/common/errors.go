// Package common — errors.go определяет пользовательские ошибки,
// которые используются во всех модулях сервиса.
// Эти ошибки позволяют обработчикам различать типы проблем
// и отдавать клиенту правильный HTTP-статус.
package common

import "errors"

// Общие ошибки
var (
	// ErrNotFound — запись не найдена (или принадлежит другому пользователю)
	ErrNotFound = errors.New("запись не найдена")
	// ErrInvalidInput — некорректные входные данные
	ErrInvalidInput = errors.New("некорректные данные")
	// ErrUnauthorized — нет или неверный токен
	ErrUnauthorized = errors.New("требуется авторизация")
	// ErrFeatureDisabled — функция отключена в настройках
	ErrFeatureDisabled = errors.New("функция временно отключена")
)

// Ошибки ежедневных заданий
var (
	// ErrCatalogExhausted — в каталоге меньше 5 активных заданий, набор на день не собрать
	ErrCatalogExhausted = errors.New("в каталоге недостаточно заданий для набора на день")
	// ErrDuplicateAssignment — набор на этот день уже создан параллельным запросом
	ErrDuplicateAssignment = errors.New("набор заданий на этот день уже существует")
	// ErrInvalidSlot — номер задания вне диапазона 1..5
	ErrInvalidSlot = errors.New("номер задания должен быть от 1 до 5")
)

// Ошибки баллов (achievement points)
var (
	// ErrInsufficientPoints — недостаточно баллов
	ErrInsufficientPoints = errors.New("недостаточно баллов")
	// ErrInvalidAmount — некорректная сумма (ноль или отрицательная)
	ErrInvalidAmount = errors.New("сумма должна быть положительной")
)

// Ошибки значков
var (
	// ErrBadgeNotAchieved — условие значка ещё не выполнено
	ErrBadgeNotAchieved = errors.New("значок ещё не заработан")
	// ErrBadgeAlreadyClaimed — награда за значок уже получена
	ErrBadgeAlreadyClaimed = errors.New("награда за значок уже получена")
)

// Ошибки магазина
var (
	// ErrAlreadyPurchased — пользователь уже участвует в этом розыгрыше
	ErrAlreadyPurchased = errors.New("вы уже участвуете в этом розыгрыше")
	// ErrItemUnavailable — товар снят с витрины
	ErrItemUnavailable = errors.New("товар недоступен")
)

// Ошибки админки
var (
	// ErrWrongPassword — неверный пароль
	ErrWrongPassword = errors.New("неверный пароль")
	// ErrTooManyAttempts — слишком много неудачных попыток входа
	ErrTooManyAttempts = errors.New("слишком много попыток, подождите 1 час")
	// ErrSessionExpired — сессия истекла
	ErrSessionExpired = errors.New("сессия истекла, авторизуйтесь заново")
)
