package models

import "time"

// TransactionKind — тип записи в леджере кошелька.
type TransactionKind string

const (
	// TransactionTopup — пополнение, сумма положительная.
	TransactionTopup TransactionKind = "TOPUP"
	// TransactionPurchase — покупка модуля, сумма отрицательная.
	TransactionPurchase TransactionKind = "PURCHASE"
)

// Wallet — баланс кредитов пользователя, один к одному с User.
type Wallet struct {
	UserUID string
	Credits int64
}

// Transaction — неизменяемая запись изменения баланса.
// Баланс кошелька всегда равен сумме его транзакций.
type Transaction struct {
	ID        int
	UserUID   string
	Amount    int64
	Kind      TransactionKind
	CreatedAt time.Time
}

// Purchase фиксирует факт покупки модуля пользователем.
type Purchase struct {
	ID        int
	UserUID   string
	ModuleID  int
	CreatedAt time.Time
}

// PurchaseReceipt — событие об успешной покупке, публикуется в очередь
// для отправки письма-квитанции.
type PurchaseReceipt struct {
	Email       string `json:"email"`
	ModuleTitle string `json:"module_title"`
	Price       int64  `json:"price"`
	Credits     int64  `json:"credits"`
}
