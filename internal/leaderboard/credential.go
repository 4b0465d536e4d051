package leaderboard

// Credential はidentityとsecretの組。
type Credential struct {
	// Identity はユーザーハンドル。
	Identity string
	// Secret はidentityに対応するパスワード。
	Secret string
}

// CredentialStore は起動時に固定される資格情報の集合。
// 生成後は読み取り専用のため、並行に参照してよい。
type CredentialStore struct {
	set map[Credential]struct{}
}

// NewCredentialStore は資格情報の一覧からストアを生成する。
func NewCredentialStore(creds []Credential) *CredentialStore {
	set := make(map[Credential]struct{}, len(creds))
	for _, c := range creds {
		set[c] = struct{}{}
	}
	return &CredentialStore{set: set}
}

// Find はidentityとsecretが完全一致する資格情報を返す。
func (s *CredentialStore) Find(identity, secret string) (Credential, bool) {
	c := Credential{Identity: identity, Secret: secret}
	if _, ok := s.set[c]; !ok {
		return Credential{}, false
	}
	return c, true
}

// Len は登録されている資格情報の数を返す。
func (s *CredentialStore) Len() int {
	return len(s.set)
}

// DefaultCredentials は開発用の固定資格情報を返す。
func DefaultCredentials() []Credential {
	return []Credential{
		{Identity: "DukeNukem", Secret: "123456"},
		{Identity: "DukeNukem1", Secret: "correctpassword"},
	}
}
