package transport

import "crypto/tls"

// Grade scores a Policy for observability: A+ for a TLS 1.3 minimum, A for
// TLS 1.2 with PFS-only suites, C for TLS 1.2 with any non-PFS suite or no
// explicit suite list, D for TLS 1.1 and F for anything older. Used only as a
// reporting signal; NewPolicy already refuses
// to build a Policy weaker than TLS 1.2 with PFS-only suites, so Grade never
// actually produces D or F for a Policy this package constructs itself — it
// exists to score configuration coming from outside this package too (an
// externally supplied tls.Config passed to GradeConfig).
type Grade string

const (
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeB     Grade = "B"
	GradeC     Grade = "C"
	GradeD     Grade = "D"
	GradeF     Grade = "F"
)

// Grade scores this policy's security posture.
func (p *Policy) Grade() Grade {
	return gradeFor(p.MinVersion, p.CipherIDs)
}

// GradeConfig scores an arbitrary *tls.Config the same way, so the HSM
// transport layer can report on configuration it didn't build through
// NewPolicy (e.g. a caller-supplied tls.Config).
func GradeConfig(cfg *tls.Config) Grade {
	return gradeFor(cfg.MinVersion, cfg.CipherSuites)
}

func gradeFor(minVersion uint16, cipherIDs []uint16) Grade {
	switch {
	case minVersion >= tls.VersionTLS13:
		return GradeAPlus
	case minVersion == tls.VersionTLS12 && allPFS(cipherIDs):
		return GradeA
	case minVersion == tls.VersionTLS12:
		return GradeC
	case minVersion == tls.VersionTLS11:
		return GradeD
	default:
		return GradeF
	}
}

func allPFS(cipherIDs []uint16) bool {
	if len(cipherIDs) == 0 {
		// TLS 1.3 negotiates suites the runtime doesn't expose here; an
		// empty list at TLS 1.2 means no explicit restriction was applied.
		return false
	}
	for _, id := range cipherIDs {
		if !isPFSSuite(id) {
			return false
		}
	}
	return true
}

func isPFSSuite(id uint16) bool {
	switch id {
	case tls.TLS_AES_256_GCM_SHA384,
		tls.TLS_CHACHA20_POLY1305_SHA256,
		tls.TLS_AES_128_GCM_SHA256,
		tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
		tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
		tls.TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305,
		tls.TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305:
		return true
	default:
		return false
	}
}
