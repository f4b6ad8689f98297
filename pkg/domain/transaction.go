package domain

// Transaction is a single financial transaction. Immutable once built.
type Transaction struct {
	id          string
	accountID   string
	categoryID  string
	payeeID     string
	amount      Money
	date        string
	description string
}

// NewTransaction creates a transaction with the required fields only.
func NewTransaction(id, accountID, categoryID string, amount Money) Transaction {
	return Transaction{
		id:         id,
		accountID:  accountID,
		categoryID: categoryID,
		amount:     amount,
	}
}

func (t Transaction) ID() string         { return t.id }
func (t Transaction) AccountID() string  { return t.accountID }
func (t Transaction) CategoryID() string { return t.categoryID }
func (t Transaction) Amount() Money      { return t.amount }

// PayeeID returns the payee id, or "" when the transaction has none.
func (t Transaction) PayeeID() string { return t.payeeID }

// Date returns the ISO YYYY-MM-DD date, or "" when unknown.
func (t Transaction) Date() string { return t.date }

// Description returns the free-text memo, or "" when absent.
func (t Transaction) Description() string { return t.description }

// Month returns the YYYY-MM prefix of the date, or "" when the transaction
// is undated.
func (t Transaction) Month() string {
	if len(t.date) < 7 {
		return ""
	}
	return t.date[:7]
}

// TransactionBuilder assembles a Transaction field by field.
type TransactionBuilder struct {
	txn Transaction
}

// NewTransactionBuilder creates an empty builder.
func NewTransactionBuilder() *TransactionBuilder {
	return &TransactionBuilder{}
}

func (b *TransactionBuilder) ID(id string) *TransactionBuilder {
	b.txn.id = id
	return b
}

func (b *TransactionBuilder) AccountID(accountID string) *TransactionBuilder {
	b.txn.accountID = accountID
	return b
}

func (b *TransactionBuilder) CategoryID(categoryID string) *TransactionBuilder {
	b.txn.categoryID = categoryID
	return b
}

func (b *TransactionBuilder) PayeeID(payeeID string) *TransactionBuilder {
	b.txn.payeeID = payeeID
	return b
}

func (b *TransactionBuilder) Amount(amount Money) *TransactionBuilder {
	b.txn.amount = amount
	return b
}

func (b *TransactionBuilder) Date(date string) *TransactionBuilder {
	b.txn.date = date
	return b
}

func (b *TransactionBuilder) Description(description string) *TransactionBuilder {
	b.txn.description = description
	return b
}

// Build returns the assembled transaction.
func (b *TransactionBuilder) Build() Transaction {
	return b.txn
}
