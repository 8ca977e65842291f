package translation

type phrasePair struct {
	from string
	to   string
}

// englishMarathi is ordered; when two English phrases share one Marathi
// rendering, the earlier pair wins the reverse lookup.
var englishMarathi = []phrasePair{
	{"hello", "नमस्कार"},
	{"hi", "नमस्कार"},
	{"hello how are you", "नमस्कार तुम्ही कसे आहात"},
	{"how are you", "तुम्ही कसे आहात"},
	{"i am fine", "मी ठीक आहे"},
	{"i am good", "मी चांगला आहे"},
	{"good morning", "सुप्रभात"},
	{"good afternoon", "शुभ दुपार"},
	{"good evening", "शुभ संध्या"},
	{"good night", "शुभ रात्री"},
	{"good day", "सुखद दिवस"},
	{"good to see you", "तुम्हाला पाहून आनंद झाला"},
	{"nice to meet you", "तुम्हाला भेटून आनंद झाला"},
	{"thank you", "धन्यवाद"},
	{"thanks", "धन्यवाद"},
	{"thank you so much", "खूप खूप धन्यवाद"},
	{"please", "कृपया"},
	{"yes", "होय"},
	{"no", "नाही"},
	{"sorry", "माफ करा"},
	{"excuse me", "माफ करा"},
	{"what is your name", "तुमचे नाव काय आहे"},
	{"my name is", "माझे नाव"},
	{"goodbye", "निरोप"},
	{"bye", "निरोप"},
	{"see you later", "पुन्हा भेटू"},
	{"where", "कुठे"},
	{"what", "काय"},
	{"when", "केव्हा"},
	{"how", "कसे"},
	{"why", "का"},
	{"water", "पाणी"},
	{"food", "अन्न"},
	{"help", "मदत"},
	{"i need help", "मला मदत हवी"},
	{"where is the bathroom", "स्नानगृह कुठे आहे"},
	{"how much", "किती"},
	{"today", "आज"},
	{"tomorrow", "उद्या"},
	{"yesterday", "काल"},
	{"computer", "संगणक"},
	{"software", "सॉफ्टवेअर"},
	{"i love you", "मी तुझ्यावर प्रेम करतो"},
	{"i love programming", "मला प्रोग्रामिंग आवडते"},
	{"i want to learn programming", "मला प्रोग्रामिंग शिकायचे आहे"},
	{"i am working", "मी काम करत आहे"},
	{"i am going to school", "मी शाळेत जातोय"},
	{"i am going home", "मी घरी जातोय"},
	{"friend", "मित्र"},
	{"mother", "आई"},
	{"father", "वडील"},
	{"brother", "भाऊ"},
	{"sister", "बहीण"},
	{"home", "घर"},
	{"school", "शाळा"},
	{"work", "काम"},
	{"money", "पैसे"},
	{"time", "वेळ"},
	{"morning", "सकाळ"},
	{"evening", "संध्याकाळ"},
	{"night", "रात्र"},
	{"meal", "जेवण"},
	{"doctor", "डॉक्टर"},
	{"hospital", "रुग्णालय"},
	{"medicine", "औषध"},
	{"i am sick", "मी आजारी आहे"},
	{"call a doctor", "डॉक्टरांना बोलवा"},
	{"welcome", "स्वागत आहे"},
	{"congratulations", "अभिनंदन"},
	{"happy birthday", "वाढदिवसाच्या हार्दिक शुभेच्छा"},
	{"i do not understand", "मला समजत नाही"},
	{"please speak slowly", "कृपया हळू बोला"},
}

// romanizedMarathiEnglish maps Marathi written in Latin script to English.
var romanizedMarathiEnglish = []phrasePair{
	{"namaskar", "hello"},
	{"namaste", "hello"},
	{"dhanyawad", "thank you"},
	{"dhanyabad", "thank you"},
	{"kasa ahat", "how are you"},
	{"kasa ahes", "how are you"},
	{"kasa kay", "how are you"},
	{"tumhi kasa ahat", "how are you"},
	{"tumhi kase ahat", "how are you"},
	{"tumche nav kay ahe", "what is your name"},
	{"majhe nav", "my name is"},
	{"maza nav", "my name is"},
	{"mi kaam karat ahe", "I am working"},
	{"mi school la jatoy", "I am going to school"},
	{"mi ghari jatoy", "I am going home"},
	{"mi khana khattoy", "I am eating food"},
	{"mala programming shikayche ahe", "I want to learn programming"},
	{"mi programming shikat ahe", "I am learning programming"},
	{"maaf kara", "sorry"},
	{"krupa kara", "please"},
	{"pani", "water"},
	{"anna", "food"},
	{"khana", "food"},
	{"jevan", "meal"},
	{"madad", "help"},
	{"maddat", "help"},
	{"kuthe", "where"},
	{"kay", "what"},
	{"kasa", "how"},
	{"kase", "how"},
	{"kiti", "how much"},
	{"kevha", "when"},
	{"kon", "who"},
	{"hoye", "yes"},
	{"hoy", "yes"},
	{"nahi", "no"},
	{"aaj", "today"},
	{"udya", "tomorrow"},
	{"kal", "yesterday"},
	{"ratri", "night"},
	{"sakal", "morning"},
	{"sandhya", "evening"},
	{"dupari", "afternoon"},
	{"ghar", "home"},
	{"ghari", "home"},
	{"shala", "school"},
	{"kaam", "work"},
	{"nokri", "job"},
	{"paisa", "money"},
	{"vel", "time"},
	{"mitra", "friend"},
	{"kutumb", "family"},
	{"aai", "mother"},
	{"baba", "father"},
	{"bhau", "brother"},
	{"bahin", "sister"},
	{"tumhi", "you"},
	{"tumi", "you"},
	{"mi", "I"},
	{"amhi", "we"},
	{"te", "they"},
	{"mala", "to me"},
	{"tula", "to you"},
	{"aahe", "is"},
	{"ahe", "is"},
	{"ahat", "are"},
	{"ahes", "are"},
	{"madhe", "in"},
	{"var", "on"},
	{"pasun", "from"},
	{"saathi", "for"},
	{"barobar", "with"},
	{"jatoy", "going"},
	{"yetoy", "coming"},
	{"karat", "doing"},
	{"khattoy", "eating"},
	{"pitoy", "drinking"},
	{"boltoy", "speaking"},
	{"baghtoy", "watching"},
	{"vachtoy", "reading"},
	{"lihtoy", "writing"},
	{"zoptoy", "sleeping"},
	{"chaltoy", "walking"},
	{"shikat", "learning"},
}
