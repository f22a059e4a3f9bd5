package entity

// CallerIdentity identidad derivada del token verificado. Vive solo durante
// la petición; la pertenencia a empresa sale exclusivamente de los claims.
type CallerIdentity struct {
	UserID    int64
	CompanyID int64
	IsOwner   bool // es_dueno: omite la consulta de permisos explícitos
}
