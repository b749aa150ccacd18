package authz

// Cargos conhecidos pelo sistema.
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "orientador"
	RoleAttendant  = "manobrista"
)

// Operações nomeadas, uma por endpoint protegido por cargo. A tabela abaixo é
// a única fonte de verdade de autorização; os handlers nunca testam cargo.
const (
	OpUserRegister   = "auth:register"
	OpUserList       = "auth:list"
	OpUserDeactivate = "auth:deactivate"
	OpUserReactivate = "auth:reactivate"
	OpAuditLogsList  = "auth:audit-logs"

	OpEventList       = "eventos:list"
	OpEventCreate     = "eventos:create"
	OpEventActivate   = "eventos:activate"
	OpEventDeactivate = "eventos:deactivate"
	OpEventDelete     = "eventos:delete"
	OpEventStats      = "eventos:stats"
	OpEventReport     = "eventos:report"
	OpEventAttendants = "eventos:attendants"
	OpEventRanking    = "eventos:ranking"

	OpVehicleCheckIn    = "veiculos:entrada"
	OpVehicleCheckOut   = "veiculos:saida"
	OpVehicleList       = "veiculos:list"
	OpVehicleBulkImport = "veiculos:massa"

	OpAnalysisRecurrence = "analise:frequencia"
)

var permissions = map[string][]string{
	OpUserRegister:   {RoleAdmin},
	OpUserList:       {RoleAdmin},
	OpUserDeactivate: {RoleAdmin},
	OpUserReactivate: {RoleAdmin},
	OpAuditLogsList:  {RoleAdmin},

	OpEventList:       {RoleAdmin, RoleSupervisor},
	OpEventCreate:     {RoleAdmin},
	OpEventActivate:   {RoleAdmin, RoleSupervisor},
	OpEventDeactivate: {RoleAdmin, RoleSupervisor},
	OpEventDelete:     {RoleAdmin},
	OpEventStats:      {RoleAdmin, RoleSupervisor},
	OpEventReport:     {RoleAdmin, RoleSupervisor},
	OpEventAttendants: {RoleAdmin, RoleSupervisor},
	OpEventRanking:    {RoleAdmin, RoleSupervisor},

	OpVehicleCheckIn:    {RoleAdmin, RoleSupervisor, RoleAttendant},
	OpVehicleCheckOut:   {RoleAdmin, RoleSupervisor, RoleAttendant},
	OpVehicleList:       {RoleAdmin, RoleSupervisor, RoleAttendant},
	OpVehicleBulkImport: {RoleAdmin, RoleSupervisor},

	OpAnalysisRecurrence: {RoleAdmin, RoleSupervisor},
}

// Allowed informa se o cargo pode executar a operação. Operação desconhecida
// nega sempre.
func Allowed(op, role string) bool {
	for _, r := range permissions[op] {
		if r == role {
			return true
		}
	}
	return false
}

// IsKnownRole valida o cargo no cadastro de usuários.
func IsKnownRole(role string) bool {
	switch role {
	case RoleAdmin, RoleSupervisor, RoleAttendant:
		return true
	}
	return false
}

// Operations lista todas as operações registradas na tabela.
func Operations() []string {
	ops := make([]string, 0, len(permissions))
	for op := range permissions {
		ops = append(ops, op)
	}
	return ops
}
