package dialog

import (
	"fmt"
	"strings"

	"finbot/core/ledger"
)

// Bundle carries every user-facing string for one display language. The state
// machine itself is language-independent; only prompts, button captions, and
// the type/category display names vary.
type Bundle struct {
	Tag string

	// Lowercased keywords that cancel the dialogue from any step.
	CancelWords []string

	MainMenu string

	BtnAddIncome     string
	BtnAddExpense    string
	BtnLast          string
	BtnEdit          string
	BtnDelete        string
	BtnTotalExpenses string
	BtnTotalIncome   string
	BtnYes           string
	BtnNo            string

	AskTitle           string
	AskTitleIncome     string
	AskTitleExpense    string
	AskNewTitleIncome  string
	AskNewTitleExpense string
	InvalidTitle       string

	ChooseCategory        string
	ChooseCategoryButtons string

	AskValue     string // fmt: type display name
	InvalidValue string

	ConfirmSave       string
	ConfirmDeletion   string
	UseConfirmButtons string
	UseDeleteButtons  string

	SavedIncome  string
	SavedExpense string
	Deleted      string
	SaveFailed   string
	DeleteFailed string
	TryAgain     string

	OperationCancelled   string
	TransactionCancelled string
	DeletionCancelled    string

	InvalidID       string
	AskEditID       string
	AskDeleteID     string
	NothingToEdit   string
	NothingToDelete string
	NoTransactions  string

	TotalExpenses string // fmt: formatted value, count
	TotalIncome   string // fmt: formatted value, count

	typeNames     map[ledger.Type]string
	categoryNames map[ledger.Category]string
}

// TypeName returns the display name for a transaction type.
func (b Bundle) TypeName(t ledger.Type) string {
	if name, ok := b.typeNames[t]; ok {
		return name
	}
	return string(t)
}

// CategoryName returns the display name for a category.
func (b Bundle) CategoryName(c ledger.Category) string {
	if name, ok := b.categoryNames[c]; ok {
		return name
	}
	return string(c)
}

// IsCancelWord reports whether the text is a cancellation keyword.
func (b Bundle) IsCancelWord(text string) bool {
	lowered := strings.ToLower(strings.TrimSpace(text))
	for _, w := range b.CancelWords {
		if lowered == w {
			return true
		}
	}
	return false
}

// BundleFor resolves a locale tag to its bundle, defaulting to English.
func BundleFor(tag string) (Bundle, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "", "en":
		return EnglishBundle(), nil
	case "pt", "pt-br":
		return PortugueseBundle(), nil
	}
	return Bundle{}, fmt.Errorf("dialog: unknown locale %q", tag)
}

// EnglishBundle returns the English display strings.
func EnglishBundle() Bundle {
	return Bundle{
		Tag:         "en",
		CancelWords: []string{"cancel", "cancelar", "exit"},

		MainMenu: "WHAT WOULD YOU LIKE TO DO?",

		BtnAddIncome:     "➕ ADD INCOME",
		BtnAddExpense:    "➖ ADD EXPENSE",
		BtnLast:          "📋 LAST 10 TRANSACTIONS",
		BtnEdit:          "✏️ EDIT TRANSACTION",
		BtnDelete:        "🗑️ DELETE TRANSACTION",
		BtnTotalExpenses: "💸 TOTAL EXPENSES",
		BtnTotalIncome:   "💰 TOTAL INCOME",
		BtnYes:           "✅ YES",
		BtnNo:            "❌ NO",

		AskTitle:           "WHAT IS THE TRANSACTION TITLE?",
		AskTitleIncome:     "WHAT IS THE INCOME TITLE?",
		AskTitleExpense:    "WHAT IS THE EXPENSE TITLE?",
		AskNewTitleIncome:  "WHAT IS THE NEW INCOME TITLE?",
		AskNewTitleExpense: "WHAT IS THE NEW EXPENSE TITLE?",
		InvalidTitle:       "INVALID TITLE. USE BETWEEN 4 AND 32 CHARACTERS.",

		ChooseCategory:        "CHOOSE THE CATEGORY:",
		ChooseCategoryButtons: "PLEASE CHOOSE A CATEGORY USING THE BUTTONS:",

		AskValue:     "WHAT IS THE %s VALUE? (EX: 5900 FOR R$ 59.00)",
		InvalidValue: "INVALID VALUE. MINIMUM R$ 1.00. EX: 5900 FOR R$ 59.00",

		ConfirmSave:       "CONFIRM SAVING THIS TRANSACTION?",
		ConfirmDeletion:   "CONFIRM TRANSACTION DELETION:",
		UseConfirmButtons: "PLEASE USE THE BUTTONS TO CONFIRM OR CANCEL:",
		UseDeleteButtons:  "PLEASE USE THE BUTTONS TO CONFIRM OR CANCEL THE DELETION:",

		SavedIncome:  "✅ INCOME SAVED SUCCESSFULLY!",
		SavedExpense: "✅ EXPENSE SAVED SUCCESSFULLY!",
		Deleted:      "🗑️ TRANSACTION DELETED SUCCESSFULLY!",
		SaveFailed:   "⚠️ SAVING FAILED. PLEASE CONFIRM AGAIN.",
		DeleteFailed: "ERROR DELETING TRANSACTION.",
		TryAgain:     "⚠️ SOMETHING WENT WRONG. TRY AGAIN.",

		OperationCancelled:   "❌ OPERATION CANCELLED.",
		TransactionCancelled: "❌ TRANSACTION CANCELLED.",
		DeletionCancelled:    "❌ DELETION CANCELLED.",

		InvalidID:       "INVALID ID. TRY AGAIN.",
		AskEditID:       "ENTER THE ID OF THE TRANSACTION YOU WANT TO EDIT:",
		AskDeleteID:     "ENTER THE ID OF THE TRANSACTION YOU WANT TO DELETE:",
		NothingToEdit:   "NO TRANSACTIONS TO EDIT.",
		NothingToDelete: "NO TRANSACTIONS TO DELETE.",
		NoTransactions:  "NO TRANSACTIONS FOUND.",

		TotalExpenses: "💸 TOTAL EXPENSES: %s in %d transactions",
		TotalIncome:   "💰 TOTAL INCOME: %s in %d transactions",

		typeNames: map[ledger.Type]string{
			ledger.Income:  "INCOME",
			ledger.Expense: "EXPENSE",
		},
		categoryNames: map[ledger.Category]string{},
	}
}

// PortugueseBundle returns the Brazilian Portuguese display strings.
func PortugueseBundle() Bundle {
	return Bundle{
		Tag:         "pt-br",
		CancelWords: []string{"cancel", "cancelar", "exit"},

		MainMenu: "O QUE VOCÊ GOSTARIA DE FAZER?",

		BtnAddIncome:     "➕ ADICIONAR RECEITA",
		BtnAddExpense:    "➖ ADICIONAR DESPESA",
		BtnLast:          "📋 ÚLTIMAS 10 TRANSAÇÕES",
		BtnEdit:          "✏️ EDITAR TRANSAÇÃO",
		BtnDelete:        "🗑️ DELETAR TRANSAÇÃO",
		BtnTotalExpenses: "💸 TOTAL DESPESAS",
		BtnTotalIncome:   "💰 TOTAL RECEITAS",
		BtnYes:           "✅ SIM",
		BtnNo:            "❌ NÃO",

		AskTitle:           "QUAL O TÍTULO DA TRANSAÇÃO?",
		AskTitleIncome:     "QUAL O TÍTULO DA RECEITA?",
		AskTitleExpense:    "QUAL O TÍTULO DA DESPESA?",
		AskNewTitleIncome:  "QUAL O NOVO TÍTULO DA RECEITA?",
		AskNewTitleExpense: "QUAL O NOVO TÍTULO DA DESPESA?",
		InvalidTitle:       "TÍTULO INVÁLIDO. USE ENTRE 4 E 32 CARACTERES.",

		ChooseCategory:        "ESCOLHA A CATEGORIA:",
		ChooseCategoryButtons: "POR FAVOR, ESCOLHA UMA CATEGORIA USANDO OS BOTÕES:",

		AskValue:     "QUAL O VALOR DA %s? (EX: 5900 PARA R$ 59,00)",
		InvalidValue: "VALOR INVÁLIDO. MÍNIMO R$ 1,00. EX: 5900 PARA R$ 59,00",

		ConfirmSave:       "CONFIRMA SALVAR ESTA TRANSAÇÃO?",
		ConfirmDeletion:   "CONFIRMAR EXCLUSÃO DA TRANSAÇÃO:",
		UseConfirmButtons: "POR FAVOR, USE OS BOTÕES PARA CONFIRMAR OU CANCELAR:",
		UseDeleteButtons:  "POR FAVOR, USE OS BOTÕES PARA CONFIRMAR OU CANCELAR A EXCLUSÃO:",

		SavedIncome:  "✅ RECEITA SALVA COM SUCESSO!",
		SavedExpense: "✅ DESPESA SALVA COM SUCESSO!",
		Deleted:      "🗑️ TRANSAÇÃO DELETADA COM SUCESSO!",
		SaveFailed:   "⚠️ FALHA AO SALVAR. CONFIRME NOVAMENTE.",
		DeleteFailed: "Erro ao deletar transação.",
		TryAgain:     "⚠️ ALGO DEU ERRADO. TENTE NOVAMENTE.",

		OperationCancelled:   "❌ OPERAÇÃO CANCELADA.",
		TransactionCancelled: "❌ TRANSAÇÃO CANCELADA.",
		DeletionCancelled:    "❌ EXCLUSÃO CANCELADA.",

		InvalidID:       "ID INVÁLIDO. TENTE NOVAMENTE.",
		AskEditID:       "DIGITE O ID DA TRANSAÇÃO QUE DESEJA EDITAR:",
		AskDeleteID:     "DIGITE O ID DA TRANSAÇÃO QUE DESEJA DELETAR:",
		NothingToEdit:   "NENHUMA TRANSAÇÃO PARA EDITAR.",
		NothingToDelete: "NENHUMA TRANSAÇÃO PARA DELETAR.",
		NoTransactions:  "NENHUMA TRANSAÇÃO ENCONTRADA.",

		TotalExpenses: "💸 TOTAL DE DESPESAS: %s em %d transações",
		TotalIncome:   "💰 TOTAL DE RECEITAS: %s em %d transações",

		typeNames: map[ledger.Type]string{
			ledger.Income:  "RECEITA",
			ledger.Expense: "DESPESA",
		},
		categoryNames: map[ledger.Category]string{
			ledger.CatSalary:         "SALÁRIO",
			ledger.CatInvestments:    "INVESTIMENTOS",
			ledger.CatSales:          "VENDAS",
			ledger.CatPrizes:         "PRÊMIOS",
			ledger.CatHealth:         "SAÚDE",
			ledger.CatFood:           "ALIMENTAÇÃO",
			ledger.CatEducation:      "EDUCAÇÃO",
			ledger.CatEntertainment:  "ENTRETENIMENTO",
			ledger.CatServices:       "SERVIÇOS",
			ledger.CatGifts:          "PRESENTES E DOAÇÕES",
			ledger.CatTransportation: "TRANSPORTE",
			ledger.CatShopping:       "COMPRAS",
		},
	}
}
