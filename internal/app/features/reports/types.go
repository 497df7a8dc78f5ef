// internal/app/features/reports/types.go
package reports

import (
	campaignsvc "github.com/assisberlanda/sousolidario/internal/app/services/campaigns"
	"github.com/assisberlanda/sousolidario/internal/domain/models"
)

// Sheet names of the donations workbook.
const (
	sheetDonations = "Doações"
	sheetLines     = "Itens"
	sheetProgress  = "Progresso"
	sheetFinancial = "Financeiro"
)

var donationsHeader = []string{
	"ID", "Criada em", "Doador", "Telefone", "E-mail", "Endereço",
	"Cidade", "UF", "CEP", "Data de coleta", "Horário", "Status",
}

var linesHeader = []string{"Doação", "Item", "Quantidade", "Unidade"}

var progressHeader = []string{"Item", "Prioridade", "Meta", "Doado", "Contabilizado", "%", "Prometido (incl. canceladas)"}

var financialHeader = []string{"ID", "Criada em", "Doador", "E-mail", "Telefone", "Valor (R$)", "Forma", "Status", "Mensagem"}

// exportData is everything the workbook is built from.
type exportData struct {
	Campaign  models.Campaign
	Donations []models.Donation
	Lines     map[int64][]models.DonationItem // by donation id
	Items     map[int64]models.NeededItem     // by needed item id
	Progress  campaignsvc.Progress
	Pledged   map[int64]int64 // by needed item id, cancelled donations included
	Financial []models.FinancialDonation
}
