package tui

import "github.com/jask/urna/internal/workflow"

// UI labels. Workflow notices are looked up by their MessageID.
const (
	labelTitle           = "title"
	labelCryptographyKey = "cryptography_key"
	labelPrivateKey      = "private_key"
	labelElectionData    = "election_data"
	labelOffice          = "office"
	labelEmptyOption     = "empty_option"
	labelCandidateCode   = "candidate_code"
	labelNoResults       = "no_results"
	labelSearching       = "searching"
	labelConfirmTitle    = "confirm_title"
	labelParty           = "party"
	labelPhoto           = "photo"
	labelNumber          = "number"
	labelSubmitting      = "submitting"
	labelUploading       = "uploading"
	labelReceipt         = "receipt"
	labelHelpKeys        = "help_keys"
	labelHelpDataset     = "help_dataset"
	labelHelpRetry       = "help_retry"
	labelHelpOffices     = "help_offices"
	labelHelpCode        = "help_code"
	labelHelpSuggestions = "help_suggestions"
	labelHelpConfirm     = "help_confirm"
)

const defaultLanguage = "pt"

var catalog = map[string]map[string]string{
	"pt": {
		labelTitle:           "Urna Eletrônica",
		labelCryptographyKey: "Chave de criptografia",
		labelPrivateKey:      "Chave privada",
		labelElectionData:    "Dados da eleição",
		labelOffice:          "Cargo",
		labelEmptyOption:     "— selecione —",
		labelCandidateCode:   "Número do candidato",
		labelNoResults:       "Nenhum candidato encontrado.",
		labelSearching:       "Buscando...",
		labelConfirmTitle:    "Confirme seu voto",
		labelParty:           "Partido",
		labelPhoto:           "Foto",
		labelNumber:          "Número",
		labelSubmitting:      "Registrando voto...",
		labelUploading:       "Enviando chaves...",
		labelReceipt:         "Comprovante",
		labelHelpKeys:        "tab: próximo campo  enter: enviar chaves  ctrl+c: sair",
		labelHelpDataset:     "ctrl+o: enviar dados da eleição",
		labelHelpRetry:       "r: verificar novamente  ctrl+c: sair",
		labelHelpOffices:     "↑/↓: escolher cargo  enter: selecionar  digite: buscar cargo",
		labelHelpCode:        "digite o número  ↓: sugestões  esc: cargos",
		labelHelpSuggestions: "↑/↓: escolher  enter: selecionar candidato  esc: número",
		labelHelpConfirm:     "enter: CONFIRMA  esc: CORRIGE",

		string(workflow.MsgCheckingKeys):     "Verificando chaves...",
		string(workflow.MsgKeyCheckFailed):   "Não foi possível verificar as chaves. Verifique a conexão e tente novamente.",
		string(workflow.MsgKeysRequired):     "Envie as chaves para iniciar a votação.",
		string(workflow.MsgKeysMissingFile):  "Por favor, selecione ambos os arquivos de chave.",
		string(workflow.MsgKeysUploaded):     "Chaves enviadas com sucesso!",
		string(workflow.MsgKeysUploadFailed): "Erro ao enviar as chaves. Tente novamente.",
		string(workflow.MsgDatasetMissing):   "Por favor, selecione o arquivo da eleição.",
		string(workflow.MsgDatasetUploaded):  "Dados da eleição enviados com sucesso!",
		string(workflow.MsgDatasetFailed):    "Erro ao enviar os dados da eleição. Tente novamente.",
		string(workflow.MsgOfficesFailed):    "Erro ao carregar os cargos.",
		string(workflow.MsgSearchFailed):     "Erro ao buscar candidatos.",
		string(workflow.MsgCodeNotNumeric):   "O número do candidato deve conter apenas dígitos.",
		string(workflow.MsgVoteRecorded):     "Voto registrado com sucesso!",
		string(workflow.MsgVoteFailed):       "Erro ao registrar o voto. Tente novamente.",
	},
	"en": {
		labelTitle:           "Voting Terminal",
		labelCryptographyKey: "Cryptography key",
		labelPrivateKey:      "Private key",
		labelElectionData:    "Election data",
		labelOffice:          "Office",
		labelEmptyOption:     "— select —",
		labelCandidateCode:   "Candidate number",
		labelNoResults:       "No candidates found.",
		labelSearching:       "Searching...",
		labelConfirmTitle:    "Confirm your vote",
		labelParty:           "Party",
		labelPhoto:           "Photo",
		labelNumber:          "Number",
		labelSubmitting:      "Recording vote...",
		labelUploading:       "Uploading keys...",
		labelReceipt:         "Receipt",
		labelHelpKeys:        "tab: next field  enter: upload keys  ctrl+c: quit",
		labelHelpDataset:     "ctrl+o: upload election data",
		labelHelpRetry:       "r: check again  ctrl+c: quit",
		labelHelpOffices:     "↑/↓: choose office  enter: select  type: find office",
		labelHelpCode:        "type the number  ↓: suggestions  esc: offices",
		labelHelpSuggestions: "↑/↓: choose  enter: select candidate  esc: number",
		labelHelpConfirm:     "enter: CONFIRM  esc: CORRECT",

		string(workflow.MsgCheckingKeys):     "Checking keys...",
		string(workflow.MsgKeyCheckFailed):   "Could not check the keys. Check the connection and try again.",
		string(workflow.MsgKeysRequired):     "Upload the keys to start voting.",
		string(workflow.MsgKeysMissingFile):  "Please select both key files.",
		string(workflow.MsgKeysUploaded):     "Keys uploaded.",
		string(workflow.MsgKeysUploadFailed): "Could not upload the keys. Try again.",
		string(workflow.MsgDatasetMissing):   "Please select the election file.",
		string(workflow.MsgDatasetUploaded):  "Election data uploaded.",
		string(workflow.MsgDatasetFailed):    "Could not upload the election data. Try again.",
		string(workflow.MsgOfficesFailed):    "Could not load the offices.",
		string(workflow.MsgSearchFailed):     "Could not search candidates.",
		string(workflow.MsgCodeNotNumeric):   "The candidate number must be digits only.",
		string(workflow.MsgVoteRecorded):     "Vote recorded.",
		string(workflow.MsgVoteFailed):       "Could not record the vote. Try again.",
	},
}

func lookup(lang, id string) string {
	if m, ok := catalog[lang]; ok {
		if s, ok := m[id]; ok {
			return s
		}
	}
	if s, ok := catalog[defaultLanguage][id]; ok {
		return s
	}
	return id
}
