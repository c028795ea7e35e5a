// Package pubmed holds the subset of the NCBI efetch PubmedArticle XML used
// for PMID and PMCID resolution.
package pubmed

// ArticleSet is the root element of an efetch response.
type ArticleSet struct {
	Articles []Article `xml:"PubmedArticle"`
}

type Article struct {
	MedlineCitation MedlineCitation `xml:"MedlineCitation"`
	PubmedData      PubmedData      `xml:"PubmedData"`
}

type MedlineCitation struct {
	PMID    string        `xml:"PMID"`
	Article ArticleDetail `xml:"Article"`
}

type ArticleDetail struct {
	Title    string   `xml:"ArticleTitle"`
	Journal  Journal  `xml:"Journal"`
	Authors  []Author `xml:"AuthorList>Author"`
	Language string   `xml:"Language"`
	Pages    string   `xml:"Pagination>MedlinePgn"`
}

type Journal struct {
	Title   string `xml:"Title"`
	ISSN    string `xml:"ISSN"`
	Volume  string `xml:"JournalIssue>Volume"`
	Issue   string `xml:"JournalIssue>Issue"`
	PubDate struct {
		Year  string `xml:"Year"`
		Month string `xml:"Month"`
		Day   string `xml:"Day"`
	} `xml:"JournalIssue>PubDate"`
}

type Author struct {
	LastName       string `xml:"LastName"`
	ForeName       string `xml:"ForeName"`
	CollectiveName string `xml:"CollectiveName"`
}

type PubmedData struct {
	ArticleIDs []ArticleID `xml:"ArticleIdList>ArticleId"`
}

type ArticleID struct {
	IDType string `xml:"IdType,attr"`
	Text   string `xml:",chardata"`
}
