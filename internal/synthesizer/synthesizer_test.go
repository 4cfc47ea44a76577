package synthesizer_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weirlive/panw-object/internal/domain"
	"github.com/weirlive/panw-object/internal/synthesizer"
)

func synth(t *testing.T, mutate func(*synthesizer.Policy)) *synthesizer.Synthesizer {
	t.Helper()
	p := synthesizer.DefaultPolicy()
	if mutate != nil {
		mutate(&p)
	}
	require.NoError(t, p.Validate())
	return synthesizer.New(p)
}

func TestCreateHostAuto(t *testing.T) {
	s := synth(t, nil)
	res := s.Synthesize(domain.Request{
		Zone:       "DMZ",
		Operation:  domain.OperationCreate,
		ObjectType: domain.TypeAuto,
		Entries:    []string{"1.1.1.1"},
	})

	want := []string{
		"set address DMZ_HST_1.1.1.1 ip-netmask 1.1.1.1/32",
		`set address DMZ_HST_1.1.1.1 description "1.1.1.1"`,
		"set address DMZ_HST_1.1.1.1 tag [ DMZ ]",
		"",
	}
	if diff := cmp.Diff(want, res.Lines); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, domain.OutcomeFull, res.Outcome())
}

func TestCreateSubnetFixed(t *testing.T) {
	s := synth(t, nil)
	res := s.Synthesize(domain.Request{
		Zone:       "CORP",
		Operation:  domain.OperationCreate,
		ObjectType: domain.TypeSubnet,
		Entries:    []string{"10.0.0.0/16"},
	})

	require.NotEmpty(t, res.Lines)
	assert.Equal(t, "set address CORP_SBN_10.0.0.0_16 ip-netmask 10.0.0.0/16", res.Lines[0])
}

func TestCreateFixedTypeAppliesToAllEntries(t *testing.T) {
	s := synth(t, nil)
	res := s.Synthesize(domain.Request{
		Zone:       "ext",
		Operation:  domain.OperationCreate,
		ObjectType: domain.TypeFQDN,
		Entries:    []string{"10.0.0.1", "api.example.com"},
	})

	assert.Equal(t, []string{
		"set address EXT_FQDN_10.0.0.1 fqdn 10.0.0.1",
		`set address EXT_FQDN_10.0.0.1 description "10.0.0.1"`,
		"set address EXT_FQDN_10.0.0.1 tag [ ext ]",
		"set address EXT_FQDN_API.EXAMPLE.COM fqdn api.example.com",
		`set address EXT_FQDN_API.EXAMPLE.COM description "api.example.com"`,
		"set address EXT_FQDN_API.EXAMPLE.COM tag [ ext ]",
	}, res.Directives())
}

func TestCreateHostKeepsExplicitMask(t *testing.T) {
	s := synth(t, nil)
	res := s.Synthesize(domain.Request{
		Zone:       "DMZ",
		Operation:  domain.OperationCreate,
		ObjectType: domain.TypeHost,
		Entries:    []string{"10.0.0.5/32"},
	})

	assert.Equal(t, "set address DMZ_HST_10.0.0.5_32 ip-netmask 10.0.0.5/32", res.Lines[0])
}

func TestRename(t *testing.T) {
	s := synth(t, nil)
	res := s.Synthesize(domain.Request{
		Zone:      "APP",
		Operation: domain.OperationRename,
		Entries:   []string{"LegacyServer"},
	})

	want := []string{
		"rename address LegacyServer to APP_OBJ_LEGACYSERVER",
		`set address APP_OBJ_LEGACYSERVER description "LegacyServer"`,
		"set address APP_OBJ_LEGACYSERVER tag [ APP ]",
		"",
	}
	if diff := cmp.Diff(want, res.Lines); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestRenameIgnoresObjectTypeAndTagPreamble(t *testing.T) {
	s := synth(t, nil)
	res := s.Synthesize(domain.Request{
		Zone:        "APP",
		Operation:   domain.OperationRename,
		ObjectType:  domain.TypeHost,
		Tag:         "legacy",
		DeclareTag:  true,
		Description: "migrated",
		Entries:     []string{"web-01 old"},
	})

	assert.Equal(t, []string{
		"rename address web-01 old to APP_OBJ_WEB_01_OLD",
		`set address APP_OBJ_WEB_01_OLD description "migrated"`,
		"set address APP_OBJ_WEB_01_OLD tag [ legacy ]",
	}, res.Directives())
}

func TestRenameFromLastSegment(t *testing.T) {
	s := synth(t, func(p *synthesizer.Policy) { p.RenameFrom = synthesizer.RenameFromLastSegment })
	res := s.Synthesize(domain.Request{
		Zone:      "dmz",
		Operation: domain.OperationRename,
		Entries:   []string{"MyServer_192.168.1.10", "NoUnderscore", "Trailing_"},
	})

	assert.Equal(t, []string{
		"rename address MyServer_192.168.1.10 to DMZ_OBJ_192.168.1.10",
		`set address DMZ_OBJ_192.168.1.10 description "MyServer_192.168.1.10"`,
		"set address DMZ_OBJ_192.168.1.10 tag [ dmz ]",
	}, res.Directives())
	assert.Equal(t, []string{
		"# Skipping RENAME: malformed entry (expected OriginalName_Suffix): NoUnderscore",
		"# Skipping RENAME: empty name suffix after sanitization: Trailing_",
	}, res.Comments())
}

func TestDeleteUsesRawNames(t *testing.T) {
	s := synth(t, nil)
	res := s.Synthesize(domain.Request{
		Operation: domain.OperationDelete,
		Group:     &domain.GroupSpec{Suffix: "ignored"},
		Entries:   []string{"OLD_HOST_1", "", "  old-host/2  ", "   "},
	})

	assert.Equal(t, []string{
		"delete address OLD_HOST_1",
		"delete address old-host/2",
	}, res.Lines)
}

func TestBlankAndUnsanitizableEntries(t *testing.T) {
	s := synth(t, nil)

	res := s.Synthesize(domain.Request{Zone: "DMZ", Operation: domain.OperationCreate, Entries: []string{"   "}})
	assert.Equal(t, []string{"# Nothing to generate: no entries supplied"}, res.Lines)
	assert.Equal(t, domain.OutcomeNothing, res.Outcome())

	res = s.Synthesize(domain.Request{Zone: "DMZ", Operation: domain.OperationCreate, Entries: []string{"/"}})
	assert.Equal(t, []string{"# Skipping CREATE: empty name suffix after sanitization: /"}, res.Lines)
	assert.Equal(t, domain.OutcomeNothing, res.Outcome())
	assert.NotContains(t, res.Text(), "DMZ_SBN_")
}

func TestMissingZone(t *testing.T) {
	s := synth(t, nil)
	res := s.Synthesize(domain.Request{Zone: "  ", Operation: domain.OperationRename, Entries: []string{"A"}})
	assert.Equal(t, []string{"# Nothing to generate: zone name is required"}, res.Lines)
}

func TestFullBatchWithGroupAndTags(t *testing.T) {
	s := synth(t, nil)
	res := s.Synthesize(domain.Request{
		Zone:       "web",
		Operation:  domain.OperationCreate,
		ObjectType: domain.TypeAuto,
		Tag:        "prod",
		DeclareTag: true,
		Group:      &domain.GroupSpec{Suffix: "Web Servers", Tag: "prod", DeclareTag: true},
		Entries: []string{
			"10.1.1.1",
			"",
			"/",
			"app.example.com",
			"10.2.0.0/24",
			"10.3.0.1-10.3.0.9",
		},
	})

	want := []string{
		"# Tag Definitions",
		"set tag prod",
		"",
		"set address WEB_HST_10.1.1.1 ip-netmask 10.1.1.1/32",
		`set address WEB_HST_10.1.1.1 description "10.1.1.1"`,
		"set address WEB_HST_10.1.1.1 tag [ prod ]",
		"",
		"# Skipping CREATE: empty name suffix after sanitization: /",
		"set address WEB_FQDN_APP.EXAMPLE.COM fqdn app.example.com",
		`set address WEB_FQDN_APP.EXAMPLE.COM description "app.example.com"`,
		"set address WEB_FQDN_APP.EXAMPLE.COM tag [ prod ]",
		"",
		"set address WEB_SBN_10.2.0.0_24 ip-netmask 10.2.0.0/24",
		`set address WEB_SBN_10.2.0.0_24 description "10.2.0.0/24"`,
		"set address WEB_SBN_10.2.0.0_24 tag [ prod ]",
		"",
		"set address WEB_ADR_10.3.0.1_10.3.0.9 ip-range 10.3.0.1-10.3.0.9",
		`set address WEB_ADR_10.3.0.1_10.3.0.9 description "10.3.0.1-10.3.0.9"`,
		"set address WEB_ADR_10.3.0.1_10.3.0.9 tag [ prod ]",
		"",
		"# Address Group Configuration",
		"set address-group WEB_ADG_WEB_SERVERS static [ WEB_HST_10.1.1.1 WEB_FQDN_APP.EXAMPLE.COM WEB_SBN_10.2.0.0_24 WEB_ADR_10.3.0.1_10.3.0.9 ]",
		`set address-group WEB_ADG_WEB_SERVERS description "Web Servers"`,
		"set address-group WEB_ADG_WEB_SERVERS tag [ prod ]",
	}
	if diff := cmp.Diff(want, res.Lines); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, domain.OutcomePartial, res.Outcome())
	assert.Len(t, res.Skipped(), 1)
}

func TestTagDeclarationsDistinct(t *testing.T) {
	s := synth(t, nil)
	res := s.Synthesize(domain.Request{
		Zone:       "DMZ",
		Operation:  domain.OperationCreate,
		Tag:        "edge",
		DeclareTag: true,
		Group:      &domain.GroupSpec{Tag: "edge-group", DeclareTag: true},
		Entries:    []string{"1.2.3.4"},
	})

	assert.Equal(t, []string{"# Tag Definitions", "set tag edge", "set tag edge-group", ""}, res.Lines[:4])
}

func TestTagDeclarationFallsBackToZone(t *testing.T) {
	s := synth(t, nil)
	res := s.Synthesize(domain.Request{
		Zone:       "DMZ",
		Operation:  domain.OperationCreate,
		DeclareTag: true,
		Group:      &domain.GroupSpec{DeclareTag: true},
		Entries:    []string{"1.2.3.4"},
	})

	count := 0
	for _, line := range res.Lines {
		if strings.HasPrefix(line, "set tag ") {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, "set tag DMZ", res.Lines[1])
}

func TestGroupWithoutSuffix(t *testing.T) {
	s := synth(t, nil)
	res := s.Synthesize(domain.Request{
		Zone:      "DMZ",
		Operation: domain.OperationRename,
		Group:     &domain.GroupSpec{},
		Entries:   []string{"A", "B", "A"},
	})

	lines := res.Lines
	assert.Equal(t, []string{
		"# Address Group Configuration",
		"set address-group DMZ_ADG_ static [ DMZ_OBJ_A DMZ_OBJ_B DMZ_OBJ_A ]",
		`set address-group DMZ_ADG_ description "Address group for DMZ"`,
		"set address-group DMZ_ADG_ tag [ DMZ ]",
	}, lines[len(lines)-4:])
}

func TestGroupOmittedWhenNothingEmitted(t *testing.T) {
	s := synth(t, nil)
	res := s.Synthesize(domain.Request{
		Zone:      "DMZ",
		Operation: domain.OperationCreate,
		Group:     &domain.GroupSpec{Suffix: "x"},
		Entries:   []string{"/", "--"},
	})

	assert.NotContains(t, res.Text(), "address-group")
	assert.Len(t, res.Skipped(), 2)
}

func TestGroupTaggingDisabled(t *testing.T) {
	s := synth(t, func(p *synthesizer.Policy) { p.TagGroups = false })
	res := s.Synthesize(domain.Request{
		Zone:      "DMZ",
		Operation: domain.OperationCreate,
		Group:     &domain.GroupSpec{Suffix: "web", Tag: "grp", DeclareTag: true},
		Entries:   []string{"1.1.1.1"},
	})

	assert.NotContains(t, res.Text(), "set tag grp")
	assert.NotContains(t, res.Text(), "address-group DMZ_ADG_WEB tag")
	assert.Contains(t, res.Lines, "set address-group DMZ_ADG_WEB static [ DMZ_HST_1.1.1.1 ]")
}

func TestGroupMembershipExcludesSkipped(t *testing.T) {
	s := synth(t, nil)
	entries := []string{"1.1.1.1", "/", "2.2.2.2", "-", "example.org", "//"}
	res := s.Synthesize(domain.Request{
		Zone:      "Z",
		Operation: domain.OperationCreate,
		Group:     &domain.GroupSpec{Suffix: "all"},
		Entries:   entries,
	})

	skipped := len(res.Skipped())
	assert.Equal(t, 3, skipped)

	var static string
	for _, line := range res.Lines {
		if strings.Contains(line, " static [ ") {
			static = line
		}
	}
	require.NotEmpty(t, static)
	members := strings.Fields(strings.TrimSuffix(strings.SplitN(static, "[ ", 2)[1], " ]"))
	assert.Len(t, members, len(entries)-skipped)
}

func TestSanitizeModes(t *testing.T) {
	tests := []struct {
		name  string
		mode  synthesizer.SanitizeMode
		entry string
		want  string
	}{
		{"preserve host", synthesizer.SanitizePreserveDots, "1.1.1.1", "1.1.1.1"},
		{"preserve subnet", synthesizer.SanitizePreserveDots, "10.0.0.0/16", "10.0.0.0_16"},
		{"preserve range", synthesizer.SanitizePreserveDots, "10.0.0.1 - 10.0.0.9", "10.0.0.1_10.0.0.9"},
		{"preserve strips symbols", synthesizer.SanitizePreserveDots, "a*b(c)!", "abc"},
		{"preserve collapses underscores", synthesizer.SanitizePreserveDots, "__a__-__b__", "a_b"},
		{"replace host", synthesizer.SanitizeReplaceDots, "1.1.1.1", "1_1_1_1"},
		{"replace subnet", synthesizer.SanitizeReplaceDots, "10.0.0.0/16", "10_0_0_0_16"},
		{"replace fqdn", synthesizer.SanitizeReplaceDots, "www.example-site.com", "www_example_site_com"},
		{"replace only dots", synthesizer.SanitizeReplaceDots, "...", ""},
		{"empty", synthesizer.SanitizePreserveDots, "/ - /", ""},
		{"no-break space", synthesizer.SanitizePreserveDots, "a\u00a0b", "a_b"},
		{"vertical tab", synthesizer.SanitizePreserveDots, "a\vb", "a_b"},
		{"ideographic space", synthesizer.SanitizePreserveDots, "a\u3000b", "a_b"},
		{"line separator", synthesizer.SanitizePreserveDots, "a\u2028b", "a_b"},
		{"replace no-break space", synthesizer.SanitizeReplaceDots, "a.b\u00a0c", "a_b_c"},
		{"replace byte order mark", synthesizer.SanitizeReplaceDots, "a\ufeffb", "a_b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := synth(t, func(p *synthesizer.Policy) { p.Sanitize = tt.mode })
			assert.Equal(t, tt.want, s.Suffix(tt.entry))
		})
	}
}

func TestDetectionOrders(t *testing.T) {
	tests := []struct {
		name  string
		order synthesizer.DetectionOrder
		entry string
		want  domain.ObjectType
	}{
		{"range-first range", synthesizer.DetectRangeFirst, "10.0.0.1-10.0.0.5", domain.TypeRange},
		{"range-first subnet", synthesizer.DetectRangeFirst, "10.0.0.0/8", domain.TypeSubnet},
		{"range-first both", synthesizer.DetectRangeFirst, "10.0.0.0/24-10.0.1.0/24", domain.TypeRange},
		{"range-first hyphenated fqdn", synthesizer.DetectRangeFirst, "my-host.example.com", domain.TypeRange},
		{"subnet-first both", synthesizer.DetectSubnetFirst, "10.0.0.0/24-10.0.1.0/24", domain.TypeSubnet},
		{"subnet-first range", synthesizer.DetectSubnetFirst, "10.0.0.1-10.0.0.5", domain.TypeRange},
		{"host", synthesizer.DetectRangeFirst, "192.168.1.10", domain.TypeHost},
		{"host octets not range checked", synthesizer.DetectRangeFirst, "999.999.999.999", domain.TypeHost},
		{"too many octets", synthesizer.DetectRangeFirst, "1.2.3.4.5", domain.TypeFQDN},
		{"fqdn", synthesizer.DetectSubnetFirst, "example.com", domain.TypeFQDN},
		{"bare word", synthesizer.DetectRangeFirst, "localhost", domain.TypeFQDN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := synth(t, func(p *synthesizer.Policy) { p.Detection = tt.order })
			got, ok := s.Classify(tt.entry)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)

			again, _ := s.Classify(tt.entry)
			assert.Equal(t, got, again)
		})
	}
}

func TestStrictFQDN(t *testing.T) {
	s := synth(t, func(p *synthesizer.Policy) { p.StrictFQDN = true })

	_, ok := s.Classify("example.com")
	assert.True(t, ok)
	_, ok = s.Classify("localhost")
	assert.False(t, ok)

	res := s.Synthesize(domain.Request{
		Zone:      "DMZ",
		Operation: domain.OperationCreate,
		Entries:   []string{"not a domain", "example.com"},
	})
	assert.Equal(t, []string{"# Skipping CREATE: cannot classify entry: not a domain"}, res.Comments())
	assert.Equal(t, "set address DMZ_FQDN_EXAMPLE.COM fqdn example.com", res.Directives()[0])
}

var rxSetAddress = regexp.MustCompile(`^set address (\S+) (ip-netmask|ip-range|fqdn) `)

func TestConstructedNamesFollowConvention(t *testing.T) {
	entries := []string{
		"1.1.1.1", "10.0.0.0/16", " 172.16.1.5 - 172.16.1.20 ", "Mail.Example.COM",
		"a//b", "x_-_y", "__lead", "trail__", "weird!@#name", "tab\tsep",
	}
	name := regexp.MustCompile(`^[A-Z0-9.-]+_(HST|SBN|ADR|FQDN)_([A-Z0-9.]+(_[A-Z0-9.]+)*)$`)

	for _, mode := range []synthesizer.SanitizeMode{synthesizer.SanitizePreserveDots, synthesizer.SanitizeReplaceDots} {
		s := synth(t, func(p *synthesizer.Policy) { p.Sanitize = mode })
		res := s.Synthesize(domain.Request{Zone: "dmz-ext", Operation: domain.OperationCreate, Entries: entries})

		assert.Empty(t, res.Skipped(), "mode %s", mode)
		for _, line := range res.Directives() {
			m := rxSetAddress.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			assert.Equal(t, strings.ToUpper(m[1]), m[1])
			assert.Regexp(t, name, m[1], "mode %s", mode)
			assert.NotContains(t, m[1], "__")
		}
	}
}

func TestPolicyValidate(t *testing.T) {
	p := synthesizer.DefaultPolicy()
	assert.NoError(t, p.Validate())

	p.Sanitize = "lowercase"
	assert.Error(t, p.Validate())

	p = synthesizer.DefaultPolicy()
	p.Detection = "fqdn-first"
	assert.Error(t, p.Validate())

	p = synthesizer.DefaultPolicy()
	p.RenameType = " "
	assert.Error(t, p.Validate())
}

func TestGroupName(t *testing.T) {
	s := synth(t, nil)
	assert.Equal(t, "DMZ_ADG_WEB_SERVERS", s.GroupName(" dmz ", "web servers"))
	assert.Equal(t, "DMZ_ADG_", s.GroupName("DMZ", ""))
	assert.Equal(t, "DMZ_ADG_WEB_V2", s.GroupName("DMZ", "web\u00a0v2"))

	// group suffixes follow the active sanitize policy, dots included
	assert.Equal(t, "DMZ_ADG_WEB.SRV_V2", s.GroupName("DMZ", "web.srv v2"))
	strict := synth(t, func(p *synthesizer.Policy) { p.Sanitize = synthesizer.SanitizeReplaceDots })
	assert.Equal(t, "DMZ_ADG_WEB_SRV_V2", strict.GroupName("DMZ", "web.srv v2"))
}

func TestCreateWithUnicodeSpaceInEntry(t *testing.T) {
	s := synth(t, nil)
	res := s.Synthesize(domain.Request{
		Zone:       "DMZ",
		Operation:  domain.OperationCreate,
		ObjectType: domain.TypeFQDN,
		Entries:    []string{"\u00a0app\u00a0host.example.com\u00a0"},
	})

	require.NotEmpty(t, res.Lines)
	assert.Equal(t, "set address DMZ_FQDN_APP_HOST.EXAMPLE.COM fqdn app\u00a0host.example.com", res.Lines[0])
}
