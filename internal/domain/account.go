package domain

import "strconv"

const (
	DefaultInterestRate = 0.01
	MinInterestRate     = 0.00
	MaxInterestRate     = 0.10
)

type AccountNumber int

func (n AccountNumber) String() string {
	return strconv.Itoa(int(n))
}

type Account struct {
	number       AccountNumber
	balance      float64
	interestRate float64
}

type AccountOption func(*accountConfig)

type accountConfig struct {
	balance      float64
	interestRate float64
}

func WithBalance(balance float64) AccountOption {
	return func(cfg *accountConfig) {
		cfg.balance = balance
	}
}

func WithInterestRate(rate float64) AccountOption {
	return func(cfg *accountConfig) {
		cfg.interestRate = rate
	}
}

func NewAccount(number AccountNumber, opts ...AccountOption) (*Account, error) {
	cfg := accountConfig{interestRate: DefaultInterestRate}
	for _, opt := range opts {
		opt(&cfg)
	}

	if number <= 0 {
		return nil, ErrAccountNumberNotPositive
	}
	if !validAmount(cfg.balance) {
		return nil, ErrNegativeInitialBalance
	}
	if !validInterestRate(cfg.interestRate) {
		return nil, ErrInterestRateOutOfRange
	}

	return &Account{
		number:       number,
		balance:      cfg.balance,
		interestRate: cfg.interestRate,
	}, nil
}

func (a *Account) Number() AccountNumber {
	return a.number
}

func (a *Account) Balance() float64 {
	return a.balance
}

func (a *Account) InterestRate() float64 {
	return a.interestRate
}

func (a *Account) SetInterestRate(rate float64) error {
	if !validInterestRate(rate) {
		return ErrInterestRateOutOfRange
	}

	a.interestRate = rate
	return nil
}

func (a *Account) Deposit(amount float64) error {
	if !validAmount(amount) {
		return ErrNegativeDeposit
	}

	a.balance += amount
	return nil
}

func (a *Account) Withdraw(amount float64) error {
	if !validAmount(amount) {
		return ErrNegativeWithdraw
	}
	if amount > a.balance {
		return ErrWithdrawExceedsBalance
	}

	a.balance -= amount
	return nil
}

func (a *Account) AddInterest() {
	a.balance += a.balance * a.interestRate
}

func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}

	cp := *a
	return &cp
}

func validInterestRate(rate float64) bool {
	return rate >= MinInterestRate && rate <= MaxInterestRate
}

func validAmount(amount float64) bool {
	// NaN fails every comparison.
	return amount >= 0
}
