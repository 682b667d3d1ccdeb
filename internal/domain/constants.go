package domain

const (
	RoleAdmin     = "admin"
	RoleAffiliate = "affiliate"
)

const (
	ReferralStatusPending   = "pending"
	ReferralStatusCompleted = "completed"
	ReferralStatusCancelled = "cancelled"
)

const (
	PayoutStatusPending    = "pending"
	PayoutStatusProcessing = "processing"
	PayoutStatusCompleted  = "completed"
	PayoutStatusCancelled  = "cancelled"
)

const (
	PayoutMethodBankTransfer = "bank_transfer"
	PayoutMethodPaypal       = "paypal"
	PayoutMethodEWallet      = "e_wallet"
	PayoutMethodCrypto       = "crypto"
)

const (
	ProgramTypeOnline    = "online"
	ProgramTypeOffline   = "offline"
	ProgramTypeRombongan = "rombongan"
	ProgramTypeCabang    = "cabang"
)

var ProgramTypes = []string{ProgramTypeOnline, ProgramTypeOffline, ProgramTypeRombongan, ProgramTypeCabang}

var PayoutMethods = []string{PayoutMethodBankTransfer, PayoutMethodPaypal, PayoutMethodEWallet, PayoutMethodCrypto}

var PayoutStatuses = []string{PayoutStatusPending, PayoutStatusProcessing, PayoutStatusCompleted, PayoutStatusCancelled}

var ReferralStatuses = []string{ReferralStatusPending, ReferralStatusCompleted, ReferralStatusCancelled}
