// Package ofx turns OFX/QFX bank and credit card statements into expenses.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/Veraticus/spent/internal/ledger"
	"github.com/Veraticus/spent/internal/model"
	"github.com/aclindsa/ofxgo"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Parser implements OFX/QFX file parsing.
type Parser struct {
	category model.Category
}

// NewParser creates a parser that files every expense under category.
// An empty category means Other.
func NewParser(category model.Category) *Parser {
	if category == "" {
		category = model.CategoryOther
	}
	return &Parser{category: category}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// SEVERITY must be upper case.
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// Some SGML exports drop the closing bracket of bare opening tags.
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// ParseFile parses an OFX/QFX statement and returns its debits as expenses.
// Credits (deposits, refunds, payments to the card) are skipped.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]model.Expense, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var expenses []model.Expense
	var bankStmts, ccStmts, skipped int

	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		bankStmts++
		for _, tx := range stmt.BankTranList.Transactions {
			e, ok := p.convertTransaction(tx, bankPaymentMethod(tx))
			if !ok {
				skipped++
				continue
			}
			expenses = append(expenses, e)
		}
	}

	for _, msg := range resp.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		ccStmts++
		for _, tx := range stmt.BankTranList.Transactions {
			e, ok := p.convertTransaction(tx, model.PaymentCreditCard)
			if !ok {
				skipped++
				continue
			}
			expenses = append(expenses, e)
		}
	}

	slog.Info("Parsed OFX file",
		"expenses", len(expenses),
		"skipped_credits", skipped,
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return expenses, nil
}

// convertTransaction converts a debit into an expense. It reports false
// for credits and zero amounts.
func (p *Parser) convertTransaction(tx ofxgo.Transaction, payment model.PaymentMethod) (model.Expense, bool) {
	if tx.TrnAmt.Sign() >= 0 {
		return model.Expense{}, false
	}

	amount, err := ledger.ParseAmount(tx.TrnAmt.FloatString(4))
	if err != nil {
		slog.Warn("Skipping transaction with unreadable amount", "fitid", string(tx.FiTID), "error", err)
		return model.Expense{}, false
	}

	description := p.extractMerchantName(tx)
	if description == "" {
		description = tx.TrnType.String()
	}

	return model.Expense{
		Category:      p.category,
		Date:          tx.DtPosted.Format("2006-01-02"),
		Amount:        amount.Abs(),
		Description:   description,
		PaymentMethod: payment,
	}, true
}

func bankPaymentMethod(tx ofxgo.Transaction) model.PaymentMethod {
	switch tx.TrnType {
	case ofxgo.TrnTypeATM, ofxgo.TrnTypeCash:
		return model.PaymentCash
	case ofxgo.TrnTypeCheck, ofxgo.TrnTypeDirectDebit, ofxgo.TrnTypeRepeatPmt:
		return model.PaymentOther
	case ofxgo.TrnTypePayment, ofxgo.TrnTypeXfer:
		return model.PaymentOnline
	}
	return model.PaymentDebitCard
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func (p *Parser) extractMerchantName(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := string(tx.Name)
	if tx.Memo != "" && (name == "" || isGenericDescription(name)) {
		name = string(tx.Memo)
	}
	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Leading "MM/DD " posting dates.
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

// isGenericDescription checks if a transaction name is too generic.
func isGenericDescription(name string) bool {
	generic := []string{
		"DEBIT",
		"CREDIT",
		"PURCHASE",
		"PAYMENT",
		"POS TRANSACTION",
		"CARD PURCHASE",
	}

	upperName := strings.ToUpper(name)
	for _, g := range generic {
		if upperName == g {
			return true
		}
	}
	return false
}
