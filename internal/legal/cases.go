// Package legal detects and resolves case-law citations: US reporter
// patterns, UK neutral citations, a landmark-case table, and a remote
// case-law search for everything else.
package legal

import (
	"regexp"
	"sort"
	"strings"
)

// Case is one entry in the landmark-case table.
type Case struct {
	Name         string
	Citation     string
	Year         string
	Court        string
	Jurisdiction string
}

// famousCases maps normalized lookup keys to landmark cases. Several
// cases carry more than one key for common shorthand forms. Fields:
// name, citation, year, court, jurisdiction.
var famousCases = map[string]Case{
	// US Supreme Court, foundational
	"marbury v madison":       {"Marbury v. Madison", "5 U.S. 137", "1803", "Supreme Court of the United States", "US"},
	"mcculloch v maryland":    {"McCulloch v. Maryland", "17 U.S. 316", "1819", "Supreme Court of the United States", "US"},
	"gibbons v ogden":         {"Gibbons v. Ogden", "22 U.S. 1", "1824", "Supreme Court of the United States", "US"},
	"dred scott v sandford":   {"Dred Scott v. Sandford", "60 U.S. 393", "1857", "Supreme Court of the United States", "US"},
	"plessy v ferguson":       {"Plessy v. Ferguson", "163 U.S. 537", "1896", "Supreme Court of the United States", "US"},
	"lochner v new york":      {"Lochner v. New York", "198 U.S. 45", "1905", "Supreme Court of the United States", "US"},
	"schenck v united states": {"Schenck v. United States", "249 U.S. 47", "1919", "Supreme Court of the United States", "US"},
	"korematsu v united states": {"Korematsu v. United States", "323 U.S. 214", "1944", "Supreme Court of the United States", "US"},
	"wickard v filburn":         {"Wickard v. Filburn", "317 U.S. 111", "1942", "Supreme Court of the United States", "US"},

	// Civil rights era
	"brown v board":              {"Brown v. Board of Education", "347 U.S. 483", "1954", "Supreme Court of the United States", "US"},
	"brown v board of education": {"Brown v. Board of Education", "347 U.S. 483", "1954", "Supreme Court of the United States", "US"},
	"mapp v ohio":                {"Mapp v. Ohio", "367 U.S. 643", "1961", "Supreme Court of the United States", "US"},
	"gideon v wainwright":        {"Gideon v. Wainwright", "372 U.S. 335", "1963", "Supreme Court of the United States", "US"},
	"nyt v sullivan":             {"New York Times Co. v. Sullivan", "376 U.S. 254", "1964", "Supreme Court of the United States", "US"},
	"new york times v sullivan":  {"New York Times Co. v. Sullivan", "376 U.S. 254", "1964", "Supreme Court of the United States", "US"},
	"griswold v connecticut":     {"Griswold v. Connecticut", "381 U.S. 479", "1965", "Supreme Court of the United States", "US"},
	"loving v virginia":          {"Loving v. Virginia", "388 U.S. 1", "1967", "Supreme Court of the United States", "US"},
	"miranda v arizona":          {"Miranda v. Arizona", "384 U.S. 436", "1966", "Supreme Court of the United States", "US"},
	"tinker v des moines":        {"Tinker v. Des Moines Indep. Community School Dist.", "393 U.S. 503", "1969", "Supreme Court of the United States", "US"},
	"brandenburg v ohio":         {"Brandenburg v. Ohio", "395 U.S. 444", "1969", "Supreme Court of the United States", "US"},

	// 1970s-1980s
	"roe v wade":             {"Roe v. Wade", "410 U.S. 113", "1973", "Supreme Court of the United States", "US"},
	"united states v nixon":  {"United States v. Nixon", "418 U.S. 683", "1974", "Supreme Court of the United States", "US"},
	"regents v bakke":        {"Regents of the University of California v. Bakke", "438 U.S. 265", "1978", "Supreme Court of the United States", "US"},
	"chevron v nrdc":         {"Chevron U.S.A. Inc. v. Natural Resources Defense Council, Inc.", "467 U.S. 837", "1984", "Supreme Court of the United States", "US"},
	"cruzan v missouri":      {"Cruzan v. Director, Missouri Department of Health", "497 U.S. 261", "1990", "Supreme Court of the United States", "US"},

	// Modern era
	"bush v gore":                  {"Bush v. Gore", "531 U.S. 98", "2000", "Supreme Court of the United States", "US"},
	"lawrence v texas":             {"Lawrence v. Texas", "539 U.S. 558", "2003", "Supreme Court of the United States", "US"},
	"dc v heller":                  {"District of Columbia v. Heller", "554 U.S. 570", "2008", "Supreme Court of the United States", "US"},
	"district of columbia v heller": {"District of Columbia v. Heller", "554 U.S. 570", "2008", "Supreme Court of the United States", "US"},
	"citizens united v fec":         {"Citizens United v. FEC", "558 U.S. 310", "2010", "Supreme Court of the United States", "US"},
	"obergefell v hodges":           {"Obergefell v. Hodges", "576 U.S. 644", "2015", "Supreme Court of the United States", "US"},
	"montgomery v louisiana":        {"Montgomery v. Louisiana", "577 U.S. 190", "2016", "Supreme Court of the United States", "US"},
	"dobbs v jackson":               {"Dobbs v. Jackson Women's Health Organization", "597 U.S. 215", "2022", "Supreme Court of the United States", "US"},

	// State courts
	"palsgraf v lirr":        {"Palsgraf v. Long Island R.R. Co.", "248 N.Y. 339", "1928", "N.Y.", "US"},
	"palsgraf v long island": {"Palsgraf v. Long Island R.R. Co.", "248 N.Y. 339", "1928", "N.Y.", "US"},
	"palsgraf lirr":          {"Palsgraf v. Long Island R.R. Co.", "248 N.Y. 339", "1928", "N.Y.", "US"},
	"macpherson v buick":     {"MacPherson v. Buick Motor Co.", "217 N.Y. 382", "1916", "N.Y.", "US"},
	"people v goetz":         {"People v. Goetz", "68 N.Y.2d 96", "1986", "N.Y.", "US"},
	"jacob and youngs v kent": {"Jacob & Youngs, Inc. v. Kent", "230 N.Y. 239", "1921", "N.Y.", "US"},
	"tarasoff v regents":      {"Tarasoff v. Regents of the University of California", "17 Cal. 3d 425", "1976", "Cal.", "US"},
	"grimshaw v ford motor co": {"Grimshaw v. Ford Motor Co.", "119 Cal. App. 3d 757", "1981", "Cal. Ct. App.", "US"},
	"people v turner":          {"People v. Turner", "No. 15014799", "2016", "Cal. Super. Ct.", "US"},
	"hawkins v mcgee":          {"Hawkins v. McGee", "84 N.H. 114", "1929", "N.H.", "US"},
	"lucy v zehmer":            {"Lucy v. Zehmer", "196 Va. 493", "1954", "Va.", "US"},
	"sherwood v walker":        {"Sherwood v. Walker", "66 Mich. 568", "1887", "Mich.", "US"},
	"in re quinlan":            {"In re Quinlan", "355 A.2d 647", "1976", "N.J.", "US"},
	"in re baby m":             {"In re Baby M", "537 A.2d 1227", "1988", "N.J.", "US"},
	"commonwealth v hunt":      {"Commonwealth v. Hunt", "45 Mass. 111", "1842", "Mass.", "US"},
	"greenspan v osheroff":     {"Greenspan v. Osheroff", "232 Va. 388", "1986", "Supreme Court of Virginia", "US"},

	// Federal district courts
	"a&m records v napster":   {"A&M Records, Inc. v. Napster, Inc.", "114 F. Supp. 2d 896", "2000", "N.D. Cal.", "US"},
	"kitzmiller v dover":      {"Kitzmiller v. Dover Area School Dist.", "400 F. Supp. 2d 707", "2005", "M.D. Pa.", "US"},
	"kitzmiller":              {"Kitzmiller v. Dover Area School Dist.", "400 F. Supp. 2d 707", "2005", "M.D. Pa.", "US"},
	"floyd v city of new york": {"Floyd v. City of New York", "959 F. Supp. 2d 540", "2013", "S.D.N.Y.", "US"},
	"jones v clinton":          {"Jones v. Clinton", "990 F. Supp. 657", "1998", "E.D. Ark.", "US"},
	"united states v oliver north": {"United States v. North", "708 F. Supp. 380", "1988", "D.D.C.", "US"},

	// Federal circuit courts
	"united states v microsoft":      {"United States v. Microsoft Corp.", "253 F.3d 34", "2001", "D.C. Cir.", "US"},
	"united states v microsoft corp": {"United States v. Microsoft Corp.", "253 F.3d 34", "2001", "D.C. Cir.", "US"},
	"buckley v valeo":                {"Buckley v. Valeo", "519 F.2d 821", "1975", "D.C. Cir.", "US"},
	"massachusetts v epa":            {"Massachusetts v. EPA", "415 F.3d 50", "2005", "D.C. Cir.", "US"},
	"united states v carroll towing": {"United States v. Carroll Towing Co.", "159 F.2d 169", "1947", "2d Cir.", "US"},
	"authors guild v google":         {"Authors Guild v. Google, Inc.", "804 F.3d 202", "2015", "2d Cir.", "US"},
	"viacom v youtube":               {"Viacom Int'l, Inc. v. YouTube, Inc.", "676 F.3d 19", "2012", "2d Cir.", "US"},
	"newdow v us congress":           {"Newdow v. U.S. Congress", "292 F.3d 597", "2002", "9th Cir.", "US"},
	"lenz v universal music":         {"Lenz v. Universal Music Corp.", "815 F.3d 1145", "2016", "9th Cir.", "US"},
	"lenz v universal music corp":    {"Lenz v. Universal Music Corp.", "815 F.3d 1145", "2016", "9th Cir.", "US"},
	"state street bank v signature financial": {"State St. Bank & Trust Co. v. Signature Fin. Group", "149 F.3d 1368", "1998", "Fed. Cir.", "US"},

	// UK, foundational
	"donoghue v stevenson":          {"Donoghue v Stevenson", "[1932] AC 562", "1932", "House of Lords", "UK"},
	"carlill v carbolic smoke ball": {"Carlill v Carbolic Smoke Ball Company", "[1893] 1 QB 256", "1893", "Court of Appeal", "UK"},
	"hadley v baxendale":            {"Hadley v Baxendale", "(1854) 9 Exch 341", "1854", "Court of Exchequer", "UK"},
	"rylands v fletcher":            {"Rylands v Fletcher", "(1868) LR 3 HL 330", "1868", "House of Lords", "UK"},
	"salomon v salomon":             {"Salomon v A Salomon & Co Ltd", "[1897] AC 22", "1897", "House of Lords", "UK"},

	// UK criminal law
	"r v woollin":    {"R v Woollin", "[1999] 1 AC 82", "1999", "House of Lords", "UK"},
	"r v brown":      {"R v Brown", "[1994] 1 AC 212", "1994", "House of Lords", "UK"},
	"r v nedrick":    {"R v Nedrick", "[1986] 1 WLR 1025", "1986", "Court of Appeal", "UK"},
	"r v cunningham": {"R v Cunningham", "[1957] 2 QB 396", "1957", "Queen's Bench", "UK"},
	"r v ghosh":      {"R v Ghosh", "[1982] QB 1053", "1982", "Court of Appeal", "UK"},
	"r v dica":       {"R v Dica", "[2004] EWCA Crim 1103", "2004", "Court of Appeal", "UK"},

	// UK tort law
	"caparo v dickman":      {"Caparo Industries plc v Dickman", "[1990] 2 AC 605", "1990", "House of Lords", "UK"},
	"anns v merton":         {"Anns v Merton London Borough Council", "[1978] AC 728", "1978", "House of Lords", "UK"},
	"hedley byrne v heller": {"Hedley Byrne & Co Ltd v Heller & Partners Ltd", "[1964] AC 465", "1964", "House of Lords", "UK"},
	"bolton v stone":        {"Bolton v Stone", "[1951] AC 850", "1951", "House of Lords", "UK"},

	// UK contract law
	"balfour v balfour":  {"Balfour v Balfour", "[1919] 2 KB 571", "1919", "Court of Appeal", "UK"},
	"williams v roffey":  {"Williams v Roffey Bros & Nicholls (Contractors) Ltd", "[1991] 1 QB 1", "1991", "Court of Appeal", "UK"},
	"central london property v high trees": {"Central London Property Trust Ltd v High Trees House Ltd", "[1947] KB 130", "1947", "King's Bench", "UK"},
	"hong kong fir v kawasaki":             {"Hong Kong Fir Shipping Co Ltd v Kawasaki Kisen Kaisha Ltd", "[1962] 2 QB 26", "1962", "Court of Appeal", "UK"},

	// UK constitutional and public law
	"entick v carrington": {"Entick v Carrington", "(1765) 19 St Tr 1029", "1765", "Court of Common Pleas", "UK"},
	"r v secretary of state ex parte factortame": {"R v Secretary of State for Transport, ex parte Factortame Ltd (No 2)", "[1991] 1 AC 603", "1991", "House of Lords", "UK"},
	"factortame":                  {"R v Secretary of State for Transport, ex parte Factortame Ltd (No 2)", "[1991] 1 AC 603", "1991", "House of Lords", "UK"},
	"r miller v secretary of state": {"R (Miller) v Secretary of State for Exiting the European Union", "[2017] UKSC 5", "2017", "Supreme Court", "UK"},
	"miller v secretary of state":   {"R (Miller) v Secretary of State for Exiting the European Union", "[2017] UKSC 5", "2017", "Supreme Court", "UK"},
}

// Fuzzy-match cutoffs. Single-result lookups demand a close match;
// multi-result search casts a wider net.
const (
	matchCutoff = 0.7
	multiCutoff = 0.5
)

var vsToken = regexp.MustCompile(`\b(vs|versus)\b`)

// normalizeKey reduces a case name to its table-lookup form: lowercase,
// punctuation stripped, vs/versus collapsed to v, spaces collapsed.
func normalizeKey(text string) string {
	s := strings.ToLower(text)
	s = strings.NewReplacer(".", "", ",", "", ":", "", ";", "").Replace(s)
	s = vsToken.ReplaceAllString(s, "v")
	return strings.Join(strings.Fields(s), " ")
}

// LookupCase finds the landmark case best matching text: exact
// normalized key first, then the closest key at similarity ≥ 0.7.
func LookupCase(text string) (Case, bool) {
	key := normalizeKey(text)
	if c, ok := famousCases[key]; ok {
		return c, true
	}
	var best Case
	bestScore := 0.0
	for k, c := range famousCases {
		if s := similarity(key, k); s > bestScore {
			best, bestScore = c, s
		}
	}
	if bestScore >= matchCutoff {
		return best, true
	}
	return Case{}, false
}

// LookupCases returns up to limit landmark cases resembling text,
// best match first, deduplicated by case name. Exact hits rank above
// fuzzy ones regardless of score.
func LookupCases(text string, limit int) []Case {
	if limit <= 0 {
		return nil
	}
	key := normalizeKey(text)

	var out []Case
	seen := make(map[string]bool)
	if c, ok := famousCases[key]; ok {
		out = append(out, c)
		seen[c.Name] = true
	}

	type scored struct {
		c     Case
		score float64
	}
	var cands []scored
	for k, c := range famousCases {
		if s := similarity(key, k); s >= multiCutoff {
			cands = append(cands, scored{c, s})
		}
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].score != cands[j].score {
			return cands[i].score > cands[j].score
		}
		return cands[i].c.Name < cands[j].c.Name
	})
	for _, sc := range cands {
		if len(out) >= limit {
			break
		}
		if seen[sc.c.Name] {
			continue
		}
		seen[sc.c.Name] = true
		out = append(out, sc.c)
	}
	return out
}

// similarity is 1 - editDistance/longest, in [0, 1].
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	ra, rb := []rune(a), []rune(b)
	longest := max(len(ra), len(rb))
	if longest == 0 {
		return 1
	}
	return 1 - float64(editDistance(ra, rb))/float64(longest)
}

// editDistance is the Levenshtein distance between two rune slices,
// computed with two rows in O(min(m,n)) space.
func editDistance(s1, s2 []rune) int {
	if len(s1) > len(s2) {
		s1, s2 = s2, s1
	}
	m, n := len(s1), len(s2)
	if m == 0 {
		return n
	}

	prev := make([]int, m+1)
	curr := make([]int, m+1)
	for i := 0; i <= m; i++ {
		prev[i] = i
	}
	for j := 1; j <= n; j++ {
		curr[0] = j
		for i := 1; i <= m; i++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[m]
}
