package nakama

// RPC ids registered with Nakama.
const (
	RpcMatchEncode    = "match_encode"
	RpcMatchDecode    = "match_decode"
	RpcMatchSave      = "match_save"
	RpcMatchLoad      = "match_load"
	RpcMatchList      = "match_list"
	RpcMatchDelete    = "match_delete"
	RpcMatchStandings = "match_standings"
	RpcMatchEarnings  = "match_earnings"
)

// gRPC status codes used for runtime.NewError.
const (
	codeInvalidArgument   = 3
	codeNotFound          = 5
	codeResourceExhausted = 8
	codeInternal          = 13
	codeUnauthenticated   = 16
)

// EnvMatchConfigPath names the runtime env entry holding the config file path.
const EnvMatchConfigPath = "match_config_path"
